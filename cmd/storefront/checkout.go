package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Buy everything in the cart and empty it",
		Args:  cobra.NoArgs,
		RunE: withStorefront(func(cmd *cobra.Command, sf *storefront, _ []string) error {
			receipt, err := sf.checkout.Checkout(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), receipt.Message)
			return nil
		}),
	}
}
