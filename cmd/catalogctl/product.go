package main

import (
	"fmt"

	"github.com/ariefcatur/go-catalog-client/internal/catalog"
	"github.com/ariefcatur/go-catalog-client/internal/form"
	"github.com/spf13/cobra"
)

func newProductCmd(o *overrides) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage products",
	}
	cmd.AddCommand(newProductCreateCmd(o))
	return cmd
}

// product fields settable from flags, in form order.
var productFields = []struct{ flag, field, usage string }{
	{"name", catalog.FieldName, "Product name"},
	{"sku", catalog.FieldSKU, "SKU"},
	{"description", catalog.FieldDescription, "Description"},
	{"category", catalog.FieldCategory, "Category"},
	{"price", catalog.FieldPrice, "Price (number >= 0)"},
	{"tags", catalog.FieldTags, "Tags (comma separated)"},
	{"stock", catalog.FieldStock, "Stock (integer >= 0)"},
}

func newProductCreateCmd(o *overrides) *cobra.Command {
	values := make(map[string]*string, len(productFields))
	var images []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product with the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *o, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.close()

			if !a.auth.Authenticated(cmd.Context()) {
				a.log.Warn().Msg("no stored session, the API will likely reject this request")
			}

			c := form.NewCreateProduct(a.deps("Creating..."))
			for _, f := range productFields {
				if !cmd.Flags().Changed(f.flag) {
					continue
				}
				if _, err := c.Input(f.field, *values[f.flag]); err != nil {
					return err
				}
			}
			if len(images) > 0 {
				// satu flag per URL; jangan di-split, URL boleh mengandung koma
				if _, err := c.Draft().Set(catalog.FieldImages, catalog.List(images)); err != nil {
					return err
				}
			}

			if err := c.Submit(cmd.Context()); err != nil {
				return fmt.Errorf("product not submitted: %w", err)
			}
			return outcome(c.Status())
		},
	}

	for _, f := range productFields {
		values[f.flag] = cmd.Flags().String(f.flag, "", f.usage)
	}
	cmd.Flags().StringArrayVar(&images, "image", nil, "Image URL, repeat for several")
	return cmd
}
