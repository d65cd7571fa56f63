// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/buypy/backoffice/internal/i18n"
	"github.com/buypy/backoffice/internal/logging"
	"github.com/buypy/backoffice/internal/model"
	"github.com/buypy/backoffice/internal/tui"
)

const dateLayout = "2006-01-02"

var productHeaders = []string{"ID", "Type", "Description", "Price", "Qty"}

func parseDecimalFlag(name, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: --%s %q is not a number", model.ErrInvalid, name, value)
	}
	return d, nil
}

// productInputFlags holds the flags shared by both add commands.
type productInputFlags struct {
	quantity   int
	price      string
	vat        string
	popularity int
	image      string
}

func (f *productInputFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.quantity, "quantity", 1, "units in stock (1-9999)")
	cmd.Flags().StringVar(&f.price, "price", "", "unit price in euro (0.01-999999.99)")
	cmd.Flags().StringVar(&f.vat, "vat", "23", "VAT rate in percent (0-100)")
	cmd.Flags().IntVar(&f.popularity, "popularity", 3, "popularity score (1-5)")
	cmd.Flags().StringVar(&f.image, "image", "", "product image (.png, .jpg or .jpeg)")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("image")
}

func (f *productInputFlags) input() (model.ProductInput, error) {
	price, err := parseDecimalFlag("price", f.price)
	if err != nil {
		return model.ProductInput{}, err
	}
	vat, err := parseDecimalFlag("vat", f.vat)
	if err != nil {
		return model.ProductInput{}, err
	}
	return model.ProductInput{
		Quantity:   f.quantity,
		Price:      price,
		VATRate:    vat,
		Popularity: f.popularity,
		ImagePath:  f.image,
	}, nil
}

func newProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List and add products",
	}

	var (
		typ                string
		minQty, maxQty     int
		minPrice, maxPrice string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally filtered by type, quantity and price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := model.ParseProductType(typ)
			if err != nil {
				return err
			}
			f := model.ProductFilter{Type: t, MinQty: minQty, MaxQty: maxQty}
			if f.MinPrice, err = parseDecimalFlag("min-price", minPrice); err != nil {
				return err
			}
			if f.MaxPrice, err = parseDecimalFlag("max-price", maxPrice); err != nil {
				return err
			}
			return withBackend(cmd, func(ctx context.Context, b tui.Backend) error {
				ps, err := b.Products(ctx, f)
				if err != nil {
					return err
				}
				if len(ps) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), i18n.T("products.empty"))
					return nil
				}
				rows := make([][]string, 0, len(ps))
				for _, p := range ps {
					rows = append(rows, []string{
						strconv.FormatInt(p.ID, 10),
						p.Type.String(),
						p.Description,
						p.Price.StringFixed(2),
						strconv.Itoa(p.Quantity),
					})
				}
				printTable(cmd.OutOrStdout(), productHeaders, rows)
				return nil
			})
		},
	}
	list.Flags().StringVar(&typ, "type", "all", `product type ("all", "book", "electronics")`)
	list.Flags().IntVar(&minQty, "min-qty", 0, "minimum quantity (0 = no bound)")
	list.Flags().IntVar(&maxQty, "max-qty", 0, "maximum quantity (0 = no bound)")
	list.Flags().StringVar(&minPrice, "min-price", "", "minimum price")
	list.Flags().StringVar(&maxPrice, "max-price", "", "maximum price")

	cmd.AddCommand(list, newAddBookCmd(), newAddElectronicsCmd())
	return cmd
}

func newAddBookCmd() *cobra.Command {
	var (
		common                                     productInputFlags
		isbn, title, genre, publisher, author, pub string
	)
	cmd := &cobra.Command{
		Use:   "add-book",
		Short: "Add a book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := common.input()
			if err != nil {
				return err
			}
			published, err := time.Parse(dateLayout, pub)
			if err != nil {
				return fmt.Errorf("%w: --published must be YYYY-MM-DD", model.ErrInvalid)
			}
			book := model.NewBook{
				ProductInput:    in,
				ISBN:            isbn,
				Title:           title,
				Genre:           genre,
				Publisher:       publisher,
				Author:          author,
				PublicationDate: published,
			}
			if err := book.Validate(); err != nil {
				return err
			}
			return withBackend(cmd, func(ctx context.Context, b tui.Backend) error {
				if err := b.AddBook(ctx, book); err != nil {
					return err
				}
				logging.Infof("added book %q", book.Title)
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("product_form.added", book.Title))
				return nil
			})
		},
	}
	common.register(cmd)
	cmd.Flags().StringVar(&isbn, "isbn", "", "ISBN")
	cmd.Flags().StringVar(&title, "title", "", "title")
	cmd.Flags().StringVar(&genre, "genre", "", "genre")
	cmd.Flags().StringVar(&publisher, "publisher", "", "publisher")
	cmd.Flags().StringVar(&author, "author", "", "author")
	cmd.Flags().StringVar(&pub, "published", "", "publication date (YYYY-MM-DD)")
	for _, name := range []string{"isbn", "title", "genre", "publisher", "author", "published"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newAddElectronicsCmd() *cobra.Command {
	var (
		common                            productInputFlags
		serial, brand, mdl, specs, kind string
	)
	cmd := &cobra.Command{
		Use:     "add-electronics",
		Aliases: []string{"add-elec"},
		Short:   "Add an electronics product",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := common.input()
			if err != nil {
				return err
			}
			e := model.NewElectronics{
				ProductInput: in,
				SerialNumber: serial,
				Brand:        brand,
				Model:        mdl,
				TechSpecs:    specs,
				Kind:         kind,
			}
			if err := e.Validate(); err != nil {
				return err
			}
			return withBackend(cmd, func(ctx context.Context, b tui.Backend) error {
				if err := b.AddElectronics(ctx, e); err != nil {
					return err
				}
				label := model.FullName(e.Brand, e.Model)
				logging.Infof("added electronics %q", label)
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("product_form.added", label))
				return nil
			})
		},
	}
	common.register(cmd)
	cmd.Flags().StringVar(&serial, "serial", "", "serial number")
	cmd.Flags().StringVar(&brand, "brand", "", "brand")
	cmd.Flags().StringVar(&mdl, "model", "", "model")
	cmd.Flags().StringVar(&specs, "specs", "", "technical specifications")
	cmd.Flags().StringVar(&kind, "type", "", `device type, e.g. "Smartphone"`)
	for _, name := range []string{"serial", "brand", "model", "type"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
