package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/infotech-symposium/event-registration/api"
	"github.com/infotech-symposium/event-registration/draft"
	"github.com/infotech-symposium/event-registration/events"
	"github.com/infotech-symposium/event-registration/form"
	"github.com/infotech-symposium/event-registration/registration"
	"github.com/infotech-symposium/event-registration/submission"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Fill in and submit the registration form",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRegister(cmd.Context(), cmd.OutOrStdout())
	},
}

// answers holds the values bound to the form widgets. The form state is
// the source of truth; answers only carry what the widgets display.
type answers struct {
	FullName      string
	College       string
	Department    string
	Email         string
	Phone         string
	Events        []string
	PaperTopic    string
	Members       [3]string
	TransactionID string
	ReceiptPath   string
	Notes         string
	Terms         bool
}

func answersFromState(state *form.State, receiptPath string) *answers {
	reg := state.Snapshot()
	return &answers{
		FullName:      reg.FullName,
		College:       reg.College,
		Department:    reg.Department,
		Email:         reg.Email,
		Phone:         reg.Phone,
		Events:        reg.Events,
		PaperTopic:    reg.PaperTopic,
		Members:       reg.TeamMembers,
		TransactionID: reg.TransactionID,
		ReceiptPath:   receiptPath,
		Notes:         reg.Notes,
		Terms:         state.TermsAccepted(),
	}
}

// sync pushes every answer into the form state. Widgets only validate the
// fields the user visited, so this runs once the form is done.
func (a *answers) sync(state *form.State) error {
	texts := map[registration.Field]string{
		registration.FieldFullName:      a.FullName,
		registration.FieldCollege:       a.College,
		registration.FieldDepartment:    a.Department,
		registration.FieldEmail:         a.Email,
		registration.FieldPhone:         a.Phone,
		registration.FieldMember2:       a.Members[0],
		registration.FieldMember3:       a.Members[1],
		registration.FieldMember4:       a.Members[2],
		registration.FieldTransactionID: a.TransactionID,
		registration.FieldNotes:         a.Notes,
	}
	for f, v := range texts {
		if err := state.Dispatch(form.SetText{Field: f, Value: v}); err != nil {
			return err
		}
	}

	if err := state.Dispatch(form.SelectEvents{Names: a.Events}); err != nil {
		return err
	}
	if state.TopicPanelVisible() {
		if err := state.Dispatch(form.SetText{Field: registration.FieldPaperTopic, Value: a.PaperTopic}); err != nil {
			return err
		}
	}

	if path := strings.TrimSpace(a.ReceiptPath); path != "" {
		if err := state.Dispatch(form.AttachReceipt{Receipt: registration.NewReceiptFromFile(path)}); err != nil {
			return err
		}
	} else if err := state.Dispatch(form.DetachReceipt{}); err != nil {
		return err
	}

	return state.Dispatch(form.SetTerms{Accepted: a.Terms})
}

// inlineError drops the reason prefix so the widget shows only the message.
func inlineError(err *registration.Error) error {
	return errors.New(err.Message)
}

func textValidator(state *form.State, f registration.Field) func(string) error {
	return func(v string) error {
		if err := state.Dispatch(form.SetText{Field: f, Value: v}); err != nil {
			return err
		}
		if fieldErr, ok := state.Errors()[f]; ok {
			return inlineError(fieldErr)
		}
		if slices.Contains(registration.RequiredFields, f) && strings.TrimSpace(v) == "" {
			return inlineError(registration.NewFieldRequiredError())
		}
		return nil
	}
}

func eventsValidator(state *form.State) func([]string) error {
	return func(selected []string) error {
		if err := state.Dispatch(form.SelectEvents{Names: selected}); err != nil {
			return err
		}
		if fieldErr, ok := state.Errors()[registration.FieldEvents]; ok {
			return inlineError(fieldErr)
		}
		return nil
	}
}

func receiptValidator(state *form.State) func(string) error {
	return func(path string) error {
		path = strings.TrimSpace(path)
		if path == "" {
			if err := state.Dispatch(form.DetachReceipt{}); err != nil {
				return err
			}
			return inlineError(registration.NewReceiptMissingError())
		}

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("Cannot read %s", filepath.Base(path))
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", filepath.Base(path))
		}

		return state.Dispatch(form.AttachReceipt{Receipt: registration.NewReceiptFromFile(path)})
	}
}

func termsValidator(state *form.State) func(bool) error {
	return func(accepted bool) error {
		if err := state.Dispatch(form.SetTerms{Accepted: accepted}); err != nil {
			return err
		}
		if !accepted {
			return inlineError(registration.NewTermsNotAcceptedError())
		}
		return nil
	}
}

func eventOptions() []huh.Option[string] {
	var options []huh.Option[string]
	for _, e := range events.All() {
		options = append(options, huh.NewOption(fmt.Sprintf("%s · %s", e.Category, e.Name), e.Name))
	}
	return options
}

func newRegistrationForm(state *form.State, a *answers, now time.Time) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("🚀 InfoTech 2026 Registration").
				Description(fmt.Sprintf("%s\nEvent date: %s · Registration fee: %s",
					registration.Countdown(now),
					registration.EventDate.Format("January 2, 2006"),
					registration.FormatFee(registration.RegistrationFee))),
			huh.NewInput().Title("Full Name").Value(&a.FullName).
				Validate(textValidator(state, registration.FieldFullName)),
			huh.NewInput().Title("College/University").Value(&a.College).
				Validate(textValidator(state, registration.FieldCollege)),
			huh.NewInput().Title("Department & Year").Value(&a.Department).
				Validate(textValidator(state, registration.FieldDepartment)),
			huh.NewInput().Title("Email Address").Value(&a.Email).
				Validate(textValidator(state, registration.FieldEmail)),
			huh.NewInput().Title("Phone Number").Description("10 digits").CharLimit(15).Value(&a.Phone).
				Validate(textValidator(state, registration.FieldPhone)),
		).Title("Participant Information"),

		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Event Selection").
				Options(eventOptions()...).
				Value(&a.Events).
				Validate(eventsValidator(state)),
		),

		huh.NewGroup(
			huh.NewInput().Title("Paper Presentation Topic").Value(&a.PaperTopic).
				Validate(func(v string) error {
					if err := state.Dispatch(form.SetText{Field: registration.FieldPaperTopic, Value: v}); err != nil {
						return err
					}
					if err := registration.ValidatePaperTopic([]string{events.PaperPresentation}, v); err != nil {
						return inlineError(err.(*registration.Error))
					}
					return nil
				}),
		).WithHideFunc(func() bool { return !state.TopicPanelVisible() }),

		huh.NewGroup(
			huh.NewInput().Title("Member 2 Name").Description("Optional").Value(&a.Members[0]).
				Validate(textValidator(state, registration.FieldMember2)),
			huh.NewInput().Title("Member 3 Name").Description("Optional").Value(&a.Members[1]).
				Validate(textValidator(state, registration.FieldMember3)),
			huh.NewInput().Title("Member 4 Name").Description("Optional").Value(&a.Members[2]).
				Validate(textValidator(state, registration.FieldMember4)),
		).Title("Team Details"),

		huh.NewGroup(
			huh.NewInput().Title("Transaction ID").Value(&a.TransactionID).
				Validate(textValidator(state, registration.FieldTransactionID)),
			huh.NewInput().Title("Payment Receipt").
				DescriptionFunc(state.ReceiptLabel, &a.ReceiptPath).
				Placeholder("path/to/receipt.png").
				Value(&a.ReceiptPath).
				Validate(receiptValidator(state)),
			huh.NewText().Title("Additional Notes").Value(&a.Notes).
				Validate(textValidator(state, registration.FieldNotes)),
			huh.NewConfirm().
				Title("I agree to the terms and conditions").
				Affirmative("I agree").
				Negative("No").
				Value(&a.Terms).
				Validate(termsValidator(state)),
		).Title("Payment Confirmation"),
	)
}

// runFormWithAutosave runs the form while the draft is saved in the
// background. Both stop when the form is done.
func runFormWithAutosave(ctx context.Context, logger *slog.Logger, drafts draft.Store, state *form.State, f *huh.Form) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return draft.NewAutosaver(drafts, state.Draft, logger, draft.WithInterval(cfg.AutosaveInterval)).Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		return f.RunWithContext(gctx)
	})

	return g.Wait()
}

func restoreDraft(ctx context.Context, logger *slog.Logger, drafts draft.Store, state *form.State) {
	d, ok, err := drafts.Load(ctx)
	if err != nil {
		logger.Error("Failed to load draft", slog.String("error", err.Error()))
		return
	}
	if !ok {
		return
	}
	state.Restore(d)
	logger.Info("Restored draft")
}

func saveDraft(ctx context.Context, logger *slog.Logger, drafts draft.Store, state *form.State) {
	if err := drafts.Save(ctx, state.Draft()); err != nil {
		logger.Error("Failed to save draft", slog.String("error", err.Error()))
	}
}

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.OpenFile(filepath.Join(dir, appName+".log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

func createRegistrar(ctx context.Context, cfg Config) (*submission.Client, error) {
	var params parameterGetter
	if cfg.Env == api.PROD && cfg.EndpointParam != "" {
		ssmParams, err := createSSMParameters(ctx)
		if err != nil {
			return nil, err
		}
		params = ssmParams
	}

	endpoint, err := resolveEndpoint(ctx, cfg, params)
	if err != nil {
		return nil, err
	}
	return submission.NewClient(endpoint, nil), nil
}

func runRegister(ctx context.Context, out io.Writer) error {
	logFile, err := openLogFile(cfg.ConfigDir)
	if err != nil {
		return err
	}
	defer logFile.Close()

	// The form owns the terminal, so logs go to a file.
	logger := newLogger(logFile, cfg.Env, flagVerbose)

	drafts, closeDrafts, err := createDraftStore(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer closeDrafts()

	registrar, err := createRegistrar(ctx, cfg)
	if err != nil {
		return err
	}

	state := form.New(logger)
	restoreDraft(ctx, logger, drafts, state)

	handler := submission.NewHandler(state, registrar, drafts, logger)
	a := answersFromState(state, "")

	for {
		err := runFormWithAutosave(ctx, logger, drafts, state, newRegistrationForm(state, a, time.Now()))
		if errors.Is(err, huh.ErrUserAborted) {
			saveDraft(ctx, logger, drafts, state)
			fmt.Fprintln(out, styleNotice.Render("Draft saved. Run `"+appName+" register` to pick up where you left off."))
			return nil
		}
		if err != nil {
			return err
		}

		if err := a.sync(state); err != nil {
			return err
		}

		fmt.Fprintln(out, styleMuted.Render("Submitting..."))
		outcome, err := handler.Submit(ctx)
		if err == nil {
			fmt.Fprintln(out, renderSuccess(outcome))
			return showSummary(outcome, cfg.ConfigDir)
		}

		fmt.Fprintln(out, renderSubmitError(err))

		var subErr *submission.Error
		if errors.As(err, &subErr) && subErr.Reason == submission.REASON_REGISTRATION_CLOSED {
			return nil
		}

		retry := true
		confirm := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().Title("Edit the form and try again?").Value(&retry),
		))
		if err := confirm.RunWithContext(ctx); err != nil || !retry {
			saveDraft(ctx, logger, drafts, state)
			return nil
		}
	}
}
