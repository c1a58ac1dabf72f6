// Package cli implements the storefront terminal front end.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/neurogrid/storefront"
)

// Option configures the root command.
type Option func(*runtime)

// WithConfig uses cfg instead of loading the environment.
func WithConfig(cfg storefront.Config) Option {
	return func(r *runtime) {
		r.cfg = &cfg
	}
}

// WithPrompter replaces the interactive prompter.
func WithPrompter(p Prompter) Option {
	return func(r *runtime) {
		r.prompter = p
	}
}

// WithAppOptions passes options to storefront.New.
func WithAppOptions(opts ...storefront.Option) Option {
	return func(r *runtime) {
		r.appOpts = append(r.appOpts, opts...)
	}
}

type runtime struct {
	cfg      *storefront.Config
	prompter Prompter
	appOpts  []storefront.Option
	app      *storefront.App

	apiURL  string
	noInput bool
}

// NewRootCommand builds the storefront command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	return newRuntime(opts...).rootCommand()
}

func newRuntime(opts ...Option) *runtime {
	r := &runtime{prompter: huhPrompter{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *runtime) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "storefront",
		Short: "NeuroGrid AI automation storefront",
		Long: `storefront is the terminal front end of the NeuroGrid AI automation courses.

Browse lab packages, subscribe to the newsletter, log in and start a checkout.
The session token is kept between runs; see STOREFRONT_TOKEN_STORE.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: r.setup,
	}
	root.PersistentFlags().StringVar(&r.apiURL, "api-url", "", "Override STOREFRONT_API_BASE_URL")
	root.PersistentFlags().BoolVar(&r.noInput, "no-input", false, "Fail instead of prompting")

	root.AddCommand(
		r.packagesCmd(),
		r.learnCmd(),
		r.buildCmd(),
		r.buyCmd(),
		r.consultCmd(),
		r.subscribeCmd(),
		r.loginCmd(),
		r.registerCmd(),
		r.logoutCmd(),
		r.whoamiCmd(),
		r.statusCmd(),
	)

	// Cobra skips post-run hooks when RunE fails, so every command
	// releases the app itself.
	for _, cmd := range root.Commands() {
		if cmd.RunE == nil {
			continue
		}
		run := cmd.RunE
		cmd.RunE = func(cmd *cobra.Command, args []string) (err error) {
			defer func() { err = errors.Join(err, r.close()) }()
			return run(cmd, args)
		}
	}
	return root
}

// close releases the app built by setup. It is safe to call more than once.
func (r *runtime) close() error {
	if r.app == nil {
		return nil
	}
	err := r.app.Close()
	r.app = nil
	return err
}

// setup loads configuration, wires the app and restores the saved session.
func (r *runtime) setup(cmd *cobra.Command, _ []string) error {
	var cfg storefront.Config
	if r.cfg != nil {
		cfg = *r.cfg
	} else {
		loaded, err := storefront.LoadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if r.apiURL != "" {
		cfg.APIBaseURL = r.apiURL
	}
	if r.noInput {
		r.prompter = noInputPrompter{}
	}

	app, err := storefront.New(cmd.Context(), cfg, r.appOpts...)
	if err != nil {
		return err
	}
	r.app = app
	r.app.Session.Bootstrap(cmd.Context())
	return nil
}
