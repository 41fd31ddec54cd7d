package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docuchat-dev/docuchat/internal/api"
	"github.com/docuchat-dev/docuchat/internal/config"
	"github.com/docuchat-dev/docuchat/internal/log"
	"github.com/docuchat-dev/docuchat/internal/session"
	"github.com/docuchat-dev/docuchat/internal/tui"
	"github.com/docuchat-dev/docuchat/internal/tui/app"
)

var noColor bool

// deps bundles everything the subcommands share.
type deps struct {
	cfg    *config.Config
	store  *session.Store
	client *api.Client
	logger *log.Logger
}

var newDeps = func() (*deps, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadFrom(dir)
	if err != nil {
		return nil, err
	}
	store := session.NewStore(dir)
	logger, err := log.NewLogger(dir)
	if err != nil {
		return nil, err
	}
	return &deps{
		cfg:    cfg,
		store:  store,
		client: api.NewClient(cfg.APIURL, store.Token),
		logger: logger,
	}, nil
}

var rootCmd = &cobra.Command{
	Use:   "docuchat",
	Short: "Terminal client for the DocuChat document QA service",
	Long: `docuchat is a terminal client for DocuChat: upload documents, watch
indexing progress live, and ask questions answered with citations.

Run without arguments for the interactive TUI, or use the subcommands for
scripting.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		return tui.Run(app.New(d.cfg, d.store, d.client, d.logger))
	},
}

// --- login / logout / whoami ---

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a bearer token and validate it",
	Long: `Store a bearer token and validate it against the server.

Mock OIDC is enabled server-side in development: any token works, e.g.

  docuchat login --token testtoken`,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, _ := cmd.Flags().GetString("token")
		if token == "" {
			fmt.Fprint(os.Stderr, "Token: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading token: %w", err)
			}
			token = strings.TrimSpace(line)
		}
		if token == "" {
			return fmt.Errorf("a token is required")
		}

		d, err := newDeps()
		if err != nil {
			return err
		}

		if err := d.store.Save(token); err != nil {
			return err
		}
		id, err := d.client.Identity(context.Background())
		if err != nil {
			// A failed validation starts the next attempt clean.
			_ = d.store.Clear()
			_ = d.logger.Append(log.LogEvent{Event: log.EventLoginFailed, Error: err.Error()})
			printError("Invalid token or server unreachable")
			return err
		}

		_ = d.logger.Append(log.LogEvent{Event: log.EventLoginSucceeded, Sub: id.Sub})
		printSuccess("Logged in as %s", id.Sub)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored bearer token",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		if err := d.store.Clear(); err != nil {
			return err
		}
		_ = d.logger.Append(log.LogEvent{Event: log.EventLogout})
		printSuccess("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the authenticated subject",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		id, err := d.client.Identity(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(id.Sub)
		return nil
	},
}

// --- docs ---

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "List your documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		docs, err := d.client.Documents(context.Background())
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			fmt.Println("No documents yet")
			return nil
		}
		fmt.Println(colorize(colorBold, fmt.Sprintf("%-40s %s", "FILENAME", "UPLOADED")))
		for _, doc := range docs {
			created := ""
			if !doc.CreatedAt.IsZero() {
				created = doc.CreatedAt.Local().Format("2006-01-02 15:04")
			}
			fmt.Printf("%-40s %s\n", doc.Filename, created)
		}
		return nil
	},
}

// --- upload ---

var uploadCmd = &cobra.Command{
	Use:   "upload FILE...",
	Short: "Upload documents for indexing",
	Long: fmt.Sprintf(`Upload up to %d PDF/MD/TXT files for indexing.

Indexing is asynchronous: the server acknowledges the upload immediately
and pushes stage events while it works. Watch them live in the TUI.`, api.MaxUploadFiles),
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		ack, err := d.client.Upload(context.Background(), args)
		if err != nil {
			_ = d.logger.Append(log.LogEvent{Event: log.EventUploadFailed, Error: err.Error()})
			return err
		}
		_ = d.logger.Append(log.LogEvent{Event: log.EventUploadQueued, Files: ack.Count})
		printSuccess("Queued %d file(s) for indexing", ack.Count)
		return nil
	},
}

// --- ask ---

var askCmd = &cobra.Command{
	Use:   "ask QUESTION",
	Short: "Ask a question about your documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.TrimSpace(args[0])
		if question == "" {
			return fmt.Errorf("the question must not be empty")
		}
		topK, _ := cmd.Flags().GetInt("top-k")

		d, err := newDeps()
		if err != nil {
			return err
		}
		result, err := d.client.Ask(context.Background(), question, topK)
		if err != nil {
			_ = d.logger.Append(log.LogEvent{Event: log.EventAskFailed, Error: err.Error()})
			return err
		}
		_ = d.logger.Append(log.LogEvent{Event: log.EventAskAnswered, TopK: topK, Citations: len(result.Citations)})

		fmt.Println(result.Answer)
		if len(result.Citations) == 0 {
			printWarning("No citations returned; the answer may not be grounded in your documents")
			return nil
		}
		fmt.Println("\nCitations:")
		for _, c := range result.Citations {
			fmt.Println("  " + tui.FormatCitation(c))
		}
		return nil
	},
}

// --- version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("docuchat %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	loginCmd.Flags().String("token", "", "bearer token (prompts when omitted)")
	askCmd.Flags().Int("top-k", api.DefaultTopK, "number of passages to retrieve")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(versionCmd)
}
