package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/mytheresa/go-storefront/app/money"
	"github.com/spf13/cobra"
)

func printCart(cmd *cobra.Command, sf *storefront) error {
	out := cmd.OutOrStdout()

	view := sf.cart.View()
	if len(view.Items) == 0 {
		fmt.Fprintln(out, "Tu carrito está vacío.")
	} else {
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tNAME\tQTY\tSUBTOTAL")
		for _, it := range view.Items {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", it.Product.Code, it.Product.Name, it.Quantity, money.Format(it.Subtotal))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Items: %d\nTotal: %s\n", view.ItemCount, money.Format(view.Total))
	return nil
}

func parseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("quantity must be a whole number, got %q", s)
	}
	return n, nil
}

func newCartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: withStorefront(func(cmd *cobra.Command, sf *storefront, _ []string) error {
			return printCart(cmd, sf)
		}),
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add CODE [QTY]",
			Short: "Add units of a product (default 1)",
			Args:  cobra.RangeArgs(1, 2),
			RunE: withStorefront(func(cmd *cobra.Command, sf *storefront, args []string) error {
				delta := 1
				if len(args) == 2 {
					n, err := parseQuantity(args[1])
					if err != nil {
						return err
					}
					delta = n
				}
				if err := sf.cart.AddQuantity(cmd.Context(), args[0], delta); err != nil {
					return err
				}
				return printCart(cmd, sf)
			}),
		},
		&cobra.Command{
			Use:   "set CODE QTY",
			Short: "Set the quantity of a cart line (0 removes it)",
			Args:  cobra.ExactArgs(2),
			RunE: withStorefront(func(cmd *cobra.Command, sf *storefront, args []string) error {
				n, err := parseQuantity(args[1])
				if err != nil {
					return err
				}
				if err := sf.cart.SetQuantity(cmd.Context(), args[0], n); err != nil {
					return err
				}
				return printCart(cmd, sf)
			}),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the cart",
			Args:  cobra.NoArgs,
			RunE: withStorefront(func(cmd *cobra.Command, sf *storefront, _ []string) error {
				if err := sf.cart.Clear(cmd.Context()); err != nil {
					return err
				}
				return printCart(cmd, sf)
			}),
		},
	)
	return cmd
}
