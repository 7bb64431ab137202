package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/infotech-symposium/event-registration/draft"
	"github.com/infotech-symposium/event-registration/form"
	"github.com/infotech-symposium/event-registration/registration"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Inspect or discard the saved registration draft",
}

var draftShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved draft",
	RunE: func(cmd *cobra.Command, args []string) error {
		drafts, closeDrafts, err := createDraftStore(cmd.Context(), logger, cfg)
		if err != nil {
			return err
		}
		defer closeDrafts()
		return showDraft(cmd.Context(), cmd.OutOrStdout(), drafts)
	},
}

var draftClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved draft",
	RunE: func(cmd *cobra.Command, args []string) error {
		drafts, closeDrafts, err := createDraftStore(cmd.Context(), logger, cfg)
		if err != nil {
			return err
		}
		defer closeDrafts()
		if err := drafts.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), styleOK.Render("Draft cleared"))
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the registration deadline and how far the saved draft has got",
	RunE: func(cmd *cobra.Command, args []string) error {
		drafts, closeDrafts, err := createDraftStore(cmd.Context(), logger, cfg)
		if err != nil {
			return err
		}
		defer closeDrafts()
		return printStatus(cmd.Context(), cmd.OutOrStdout(), drafts, time.Now())
	},
}

func showDraft(ctx context.Context, out io.Writer, drafts draft.Store) error {
	d, ok, err := drafts.Load(ctx)
	if err != nil {
		return err
	}
	if !ok || d.IsEmpty() {
		fmt.Fprintln(out, styleMuted.Render("No draft saved"))
		return nil
	}

	b, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to render draft: %w", err)
	}
	fmt.Fprint(out, string(b))
	fmt.Fprintln(out, styleMuted.Render(fmt.Sprintf("Progress: %d%%", draftProgress(d))))
	return nil
}

func printStatus(ctx context.Context, out io.Writer, drafts draft.Store, now time.Time) error {
	fmt.Fprintln(out, styleTitle.Render("InfoTech 2026"))
	fmt.Fprintln(out, registration.Countdown(now))
	fmt.Fprintf(out, "Submissions close: %s\n", registration.SubmissionDeadline.Format(time.RFC1123))
	fmt.Fprintf(out, "Event date: %s\n", registration.EventDate.Format("2 January 2006"))
	fmt.Fprintf(out, "Fee: %s\n", registration.FormatFee(registration.RegistrationFee))

	d, ok, err := drafts.Load(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, styleMuted.Render("No draft saved"))
		return nil
	}
	fmt.Fprintf(out, "Draft progress: %d%%\n", draftProgress(d))
	return nil
}

// draftProgress scores a draft the way the live form would after restoring
// it. Events and terms are never saved, so they always count as missing.
func draftProgress(d draft.Draft) int {
	state := form.New(slog.New(slog.DiscardHandler))
	state.Restore(d)
	return state.Progress()
}
