package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/pagefx/internal/config"
	"github.com/san-kum/pagefx/internal/fade"
	"github.com/san-kum/pagefx/internal/manage"
	"github.com/san-kum/pagefx/internal/page"
	"github.com/san-kum/pagefx/internal/preview"
	"github.com/san-kum/pagefx/internal/walletauth"
)

var (
	baseURL   string
	showAll   string
	walletKey string
	newKey    bool

	viewport  float64
	scrollTo  float64
	scrollBy  float64
	fadeStart map[string]string
)

func addServerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&baseURL, "base-url", config.DefaultBaseURL, "CMS base URL")
}

func serverCommands() []*cobra.Command {
	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "edit preview data as JSON",
	}

	editElementCmd := &cobra.Command{
		Use:   "element [pid]",
		Short: "edit one page element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, preview.Element(args[0]))
		},
	}
	addServerFlags(editElementCmd)
	editElementCmd.Flags().StringVar(&showAll, "show-all", "", "switch to the whole page at this path after opening")

	editPageCmd := &cobra.Command{
		Use:   "page [path]",
		Short: "edit a whole page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, preview.Page(args[0]))
		},
	}
	addServerFlags(editPageCmd)
	editCmd.AddCommand(editElementCmd, editPageCmd)

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "log into the admin with a wallet key",
		RunE:  runLogin,
	}
	addServerFlags(loginCmd)
	loginCmd.Flags().StringVar(&walletKey, "key", "", "hex private key (default $PAGEFX_WALLET_KEY)")
	loginCmd.Flags().BoolVar(&newKey, "new-key", false, "generate a throwaway key and print it")

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "print the site's preview JSON",
		RunE:  runFetch,
	}
	addServerFlags(fetchCmd)

	return []*cobra.Command{editCmd, loginCmd, fetchCmd}
}

func newPreviewClient(cfg *config.Config) *preview.Client {
	c := preview.NewClient(cfg.Server.BaseURL, nil, newLogger())
	if cfg.Server.Cookie != "" {
		c.SetCookie(cfg.Server.Cookie)
	}
	return c
}

func runEdit(cmd *cobra.Command, t preview.Target) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	current := t.Path
	if t.Kind == preview.KindElement {
		current = showAll
	}
	console := page.NewConsole(os.Stdout, newLogger(), current)
	overlay := preview.NewOverlay(newPreviewClient(cfg), console, console, newLogger())
	session := &preview.Session{
		Overlay: overlay,
		Editor:  preview.NewExternalEditor(cfg.Server.Editor),
		ShowAll: showAll,
	}

	if err := session.Run(ctx, t); err != nil {
		return err
	}
	fmt.Printf("done editing %s\n", overlay.Target())
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger()

	var provider walletauth.Provider
	switch {
	case newKey:
		kp, err := walletauth.GenerateKeyProvider()
		if err != nil {
			return err
		}
		fmt.Printf("address: %s\nkey: %s\n", kp.Address(), kp.HexKey())
		provider = kp
	case walletKey != "" || cfg.Server.WalletKey != "":
		key := walletKey
		if key == "" {
			key = cfg.Server.WalletKey
		}
		kp, err := walletauth.NewKeyProvider(key)
		if err != nil {
			return err
		}
		provider = kp
	}

	client, err := walletauth.NewClient(cfg.Server.BaseURL, logger)
	if err != nil {
		return err
	}
	console := page.NewConsole(os.Stdout, logger, "/")
	flow := &walletauth.Flow{
		Provider:  provider,
		Client:    client,
		Notifier:  console,
		Navigator: console,
		AdminPath: cfg.Server.AdminPath,
		Logger:    logger,
	}

	v, err := flow.Login(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s\n", v.Address)
	for _, c := range client.Cookies() {
		fmt.Printf("cookie: %s=%s\n", c.Name, c.Value)
	}
	return nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f := manage.NewFetcher(newPreviewClient(cfg), os.Stdout, newLogger())
	if err := f.Run(cmd.Context()); err != nil {
		fmt.Fprintf(os.Stderr, "status: %s\n", f.Status())
		return err
	}
	return nil
}

func fadeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fade",
		Short: "print element opacities while scrolling",
		Long: "Each --element name=top gives an element's top offset before scrolling.\n" +
			"Opacity falls from 1 at that offset to 0 at three quarters of the viewport.",
		RunE: runFade,
	}
	cmd.Flags().Float64Var(&viewport, "viewport", 800, "viewport height in px")
	cmd.Flags().Float64Var(&scrollTo, "scroll", 1200, "scroll distance to simulate")
	cmd.Flags().Float64Var(&scrollBy, "step", 100, "scroll step")
	cmd.Flags().StringToStringVar(&fadeStart, "element", map[string]string{"fade": "1000"}, "element start offsets (name=top)")
	return cmd
}

func runFade(cmd *cobra.Command, args []string) error {
	if scrollBy <= 0 {
		return fmt.Errorf("step must be positive")
	}
	tr := fade.NewTracker(viewport)
	starts := make(map[string]float64, len(fadeStart))
	names := make([]string, 0, len(fadeStart))
	for name, v := range fadeStart {
		top, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("element %s: %w", name, err)
		}
		tr.Track(name, top)
		starts[name] = top
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "SCROLL")
	for _, n := range names {
		fmt.Fprintf(w, "\t%s", n)
	}
	fmt.Fprintln(w)

	for y := 0.0; y <= scrollTo; y += scrollBy {
		tops := make(map[string]float64, len(starts))
		for n, top := range starts {
			tops[n] = top - y
		}
		op := tr.Scroll(tops)
		fmt.Fprintf(w, "%.0f", y)
		for _, n := range names {
			fmt.Fprintf(w, "\t%.2f", op[n])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
