package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/mytheresa/go-storefront/app/money"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: withStorefront(func(cmd *cobra.Command, sf *storefront, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tPRICE")
			for _, p := range sf.catalog.Products() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.Code, p.Name, money.Format(p.Price))
			}
			return w.Flush()
		}),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add CODE NAME PRICE",
		Short: "Add a product to the catalog",
		Args:  cobra.ExactArgs(3),
		RunE: withStorefront(func(cmd *cobra.Command, sf *storefront, args []string) error {
			price, err := decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", args[2], err)
			}
			p, err := sf.catalog.Add(cmd.Context(), args[0], args[1], price)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Producto agregado: %s %s %s\n", p.Code, p.Name, money.Format(p.Price))
			return nil
		}),
	})
	return cmd
}
