package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/camuig/fx-signals/internal/config"
	"github.com/camuig/fx-signals/internal/logger"
	"github.com/camuig/fx-signals/internal/signals"
	"github.com/camuig/fx-signals/internal/storage"
)

type rootOptions struct {
	configPath string
	dbPath     string
	verbose    bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "signalsctl",
		Short:         "Inspect fx-signals listings and stored contact messages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.configPath, "config", "config.yaml", "path to config file")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "data/fx-signals.db", "path to SQLite database")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log store activity to stderr")

	root.AddCommand(
		newDataCmd(opts),
		newListingCmd(opts, "daily", "Show the daily signal listing"),
		newListingCmd(opts, "monthly", "Show the monthly signal listing"),
		newContactsCmd(opts),
	)
	return root
}

func newDataCmd(opts *rootOptions) *cobra.Command {
	var q signals.Query
	var sort string

	cmd := &cobra.Command{
		Use:   "data",
		Short: "Show one page of the full signal listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Sort = signals.SortKey(sort)
			return withFeed(cmd, opts, func(ctx context.Context, feed *signals.Feed) (*signals.Page, error) {
				return feed.Data(ctx, q)
			})
		},
	}
	cmd.Flags().StringVar(&q.Search, "search", "", "pair substring")
	cmd.Flags().StringVar(&q.Type, "type", signals.TypeAll, "buy, sell or all")
	cmd.Flags().StringVar(&sort, "sort", string(signals.SortNewest), "newest, oldest or pair")
	cmd.Flags().IntVar(&q.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "page size (0 = default)")
	return cmd
}

func newListingCmd(opts *rootOptions, name, short string) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withFeed(cmd, opts, func(ctx context.Context, feed *signals.Feed) (*signals.Page, error) {
				if name == "daily" {
					return feed.Daily(ctx, search)
				}
				return feed.Monthly(ctx, search)
			})
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "pair substring")
	return cmd
}

func newContactsCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "List recent contact form submissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(opts, func(repo *storage.Repository) error {
				msgs, err := repo.RecentContactMessages(limit)
				if err != nil {
					return fmt.Errorf("list contact messages: %w", err)
				}
				counts, err := repo.CountContactMessagesByStatus()
				if err != nil {
					return fmt.Errorf("count contact messages: %w", err)
				}

				out := cmd.OutOrStdout()
				if len(msgs) == 0 {
					fmt.Fprintln(out, "No contact messages.")
					return nil
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "RECEIVED\tREFERENCE\tSTATUS\tNAME\tEMAIL\tSUBJECT")
				for _, m := range msgs {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
						m.CreatedAt.Format(time.DateTime), m.Reference, m.Status, m.Name, m.Email, m.Subject)
				}
				if err := w.Flush(); err != nil {
					return err
				}

				fmt.Fprintf(out, "\nsent %d, simulated %d, failed %d, pending %d\n",
					counts[storage.ContactSent], counts[storage.ContactSimulated],
					counts[storage.ContactFailed], counts[storage.ContactPending])
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of messages")
	cmd.AddCommand(newContactShowCmd(opts))
	return cmd
}

func newContactShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <reference>",
		Short: "Show one contact message by its reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(opts, func(repo *storage.Repository) error {
				m, err := repo.GetContactMessage(args[0])
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("contact message %s not found", args[0])
				}
				if err != nil {
					return fmt.Errorf("get contact message: %w", err)
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 1, ' ', 0)
				fmt.Fprintf(w, "Reference:\t%s\n", m.Reference)
				fmt.Fprintf(w, "Received:\t%s\n", m.CreatedAt.Format(time.DateTime))
				fmt.Fprintf(w, "Status:\t%s\n", m.Status)
				fmt.Fprintf(w, "From:\t%s <%s>\n", m.Name, m.Email)
				fmt.Fprintf(w, "Subject:\t%s\n", m.Subject)
				if m.Origin != "" {
					fmt.Fprintf(w, "Origin:\t%s\n", m.Origin)
				}
				if m.MailID != "" {
					fmt.Fprintf(w, "Mail ID:\t%s\n", m.MailID)
				}
				if m.LastError != "" {
					fmt.Fprintf(w, "Error:\t%s\n", m.LastError)
				}
				if err := w.Flush(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", m.Message)
				return nil
			})
		},
	}
}

// withRepository opens the local database for fn and reports a failed close
// unless fn already failed.
func withRepository(opts *rootOptions, fn func(*storage.Repository) error) (err error) {
	db, err := storage.NewDatabase(opts.dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := storage.CloseDatabase(db); cerr != nil && err == nil {
			err = fmt.Errorf("close database: %w", cerr)
		}
	}()

	return fn(storage.NewRepository(db))
}

func withFeed(cmd *cobra.Command, opts *rootOptions, fetch func(context.Context, *signals.Feed) (*signals.Page, error)) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logger.Discard()
	if opts.verbose {
		log = logger.NewWithWriter(cmd.ErrOrStderr(), "debug")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.MongoTimeout()+5*time.Second)
	defer cancel()

	store, err := storage.NewMongoStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	feed := signals.NewFeed(store,
		signals.Collections{
			Data:    cfg.Mongo.DataCollection,
			Daily:   cfg.Mongo.DailyCollection,
			Monthly: cfg.Mongo.MonthlyCollection,
		},
		signals.Limits{
			DataDefault: cfg.Signals.DataDefaultLimit,
			DataMax:     cfg.Signals.DataMaxLimit,
			Daily:       cfg.Signals.DailyLimit,
			Monthly:     cfg.Signals.MonthlyLimit,
		},
		nil, log)

	page, err := fetch(ctx, feed)
	if err != nil {
		return err
	}
	return printPage(cmd.OutOrStdout(), page)
}

func printPage(out io.Writer, page *signals.Page) error {
	if page.Source == signals.SourceMock {
		fmt.Fprintln(out, "(mock data)")
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "ID\tPAIR\tTYPE\tENTRY\tSL\tTP\tVOLUME\tPROFIT\tSTATUS\tTIME\t")
	for _, r := range page.Signals {
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t%g\t%g\t%.2f\t%s\t%s\t\n",
			r.ID, r.Pair, r.Type, r.EntryPrice, r.StopLoss, r.Target, r.Volume, r.Profit, r.Status, r.Time)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d of %d signals, total profit %.2f\n", len(page.Signals), page.Total, page.TotalProfit)
	return nil
}
