package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/neurogrid/storefront"
	"github.com/neurogrid/storefront/core/checkout"
	"github.com/neurogrid/storefront/core/gate"
)

func (r *runtime) packagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "packages",
		Short: "List lab packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderPackages(cmd.OutOrStdout(), checkout.Packages(), checkout.ConsultationOffer())
			return nil
		},
	}
}

func (r *runtime) learnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "learn",
		Short: "Start learning (opens the labs, or subscribes you first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.dispatch(cmd, gate.Intent{Action: gate.HeroPrimary})
		},
	}
}

func (r *runtime) buildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Have us build it for you (consultation)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.dispatch(cmd, gate.Intent{Action: gate.HeroSecondary})
		},
	}
}

func (r *runtime) buyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <package>",
		Short: "Start checkout for a lab package",
		Long: `Start checkout for a lab package and print the payment link.

Examples:
  storefront buy starter
  storefront buy enterprise`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{checkout.Starter, checkout.Professional, checkout.Enterprise},
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.dispatch(cmd, gate.Intent{Action: gate.PurchasePackage, PackageID: args[0]})
		},
	}
}

func (r *runtime) consultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consult",
		Short: "Book a paid consultation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.dispatch(cmd, gate.Intent{Action: gate.BookConsultation})
		},
	}
}

func (r *runtime) subscribeCmd() *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "subscribe [email]",
		Short: "Subscribe to the newsletter",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := ""
			if len(args) == 1 {
				email = args[0]
			}
			return r.capture(cmd, source, email)
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Source tag (default STOREFRONT_EMAIL_SOURCE)")
	return cmd
}

func (r *runtime) loginCmd() *cobra.Command {
	var c Credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := r.login(cmd, c); err != nil {
				return err
			}
			renderSession(cmd.OutOrStdout(), r.app.Session.Snapshot())
			return nil
		},
	}
	cmd.Flags().StringVar(&c.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&c.Password, "password", "", "Password")
	return cmd
}

func (r *runtime) registerCmd() *cobra.Command {
	var c Credentials
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.Email == "" || c.Password == "" || c.FullName == "" {
				answered, err := r.prompter.Credentials("Create your account", true, c)
				if err != nil {
					return err
				}
				c = answered
			}
			reg, err := r.app.Session.Register(cmd.Context(), c.Email, c.Password, c.FullName)
			if err != nil {
				return err
			}
			msg := reg.Message
			if msg == "" {
				msg = "Registration successful."
			}
			renderSuccess(cmd.OutOrStdout(), msg)
			if !r.app.Session.Snapshot().IsAuthenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), "Run 'storefront login' to sign in.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&c.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&c.Password, "password", "", "Password")
	cmd.Flags().StringVar(&c.FullName, "name", "", "Full name")
	return cmd
}

func (r *runtime) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			was := r.app.Session.Snapshot().IsAuthenticated()
			r.app.Session.Logout(cmd.Context())
			if was {
				fmt.Fprintln(cmd.OutOrStdout(), "Logged out successfully.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
			}
			return nil
		},
	}
}

func (r *runtime) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderSession(cmd.OutOrStdout(), r.app.Session.Snapshot())
			return nil
		},
	}
}

func (r *runtime) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the storefront backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := r.app.Health(cmd.Context())
			for _, res := range report {
				if res.Err != nil {
					renderNotice(cmd.OutOrStdout(), fmt.Sprintf("%-6s unavailable (%s)", res.Name, res.Err))
					continue
				}
				renderSuccess(cmd.OutOrStdout(), fmt.Sprintf("%-6s ok (%s)", res.Name, res.Elapsed.Round(time.Millisecond)))
			}
			renderSession(cmd.OutOrStdout(), r.app.Session.Snapshot())
			return report.Err()
		},
	}
}

// dispatch runs intent through the gate and carries out prompts.
func (r *runtime) dispatch(cmd *cobra.Command, intent gate.Intent) error {
	out, err := r.app.Dispatch(cmd.Context(), intent)
	if err != nil {
		return err
	}

	switch out.Decision.Kind {
	case gate.PromptEmailCapture:
		r.app.Pending.Clear()
		return r.capture(cmd, "", "")
	case gate.PromptAuth:
		renderNotice(cmd.OutOrStdout(), "Please log in to continue.")
		if err := r.login(cmd, Credentials{}); err != nil {
			r.app.Pending.Clear()
			return err
		}
		out, _, err = r.app.Resume(cmd.Context())
		if err != nil {
			return err
		}
	}

	printOutcome(cmd.OutOrStdout(), out)
	return nil
}

func (r *runtime) login(cmd *cobra.Command, c Credentials) error {
	if c.Email == "" || c.Password == "" {
		answered, err := r.prompter.Credentials("Log in", false, c)
		if err != nil {
			return err
		}
		c = answered
	}
	_, err := r.app.Session.Login(cmd.Context(), c.Email, c.Password)
	return err
}

func (r *runtime) capture(cmd *cobra.Command, source, email string) error {
	if email == "" {
		answered, err := r.prompter.Email("Get free AI automation lessons by email")
		if err != nil {
			return err
		}
		email = answered
	}

	p := r.app.EmailPrompt(source)
	defer p.Dismiss()
	res, err := p.Submit(cmd.Context(), email)
	if err != nil {
		return err
	}
	renderSuccess(cmd.OutOrStdout(), res.Message)
	return nil
}

func printOutcome(w io.Writer, out storefront.Outcome) {
	if out.Redirect != nil {
		renderSuccess(w, "Checkout ready for "+out.Redirect.Item.Name)
		fmt.Fprintf(w, "Open this link to pay: %s\n", out.Redirect.URL)
		return
	}
	switch out.Decision.Target {
	case gate.TargetLabs:
		fmt.Fprintln(w, "Welcome back! Your labs are ready: run 'storefront packages' to see what's included.")
	case gate.TargetConsultation:
		fmt.Fprintln(w, "Let's build it together: run 'storefront consult' to book a session.")
	}
}
