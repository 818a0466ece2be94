package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/five82/mamba/internal/dashboard"
	"github.com/five82/mamba/internal/model"
	"github.com/five82/mamba/internal/view"
)

// SummaryRequest selects the dashboard to print.
type SummaryRequest struct {
	User     string
	Platform string
}

// Summary fetches the snapshot once and writes the per-profile projection
// for one user and platform to out. Logs go to logw.
func Summary(ctx context.Context, opts Options, req SummaryRequest, out, logw io.Writer) error {
	ctrl, err := openSession(ctx, opts, req.User, req.Platform, logw)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	writeSummary(out, ctrl.Session(), ctrl.Sections())
	return nil
}

// AddRequest describes one video to create.
type AddRequest struct {
	User     string
	Platform string
	Profile  string
	Title    string
	Link     string
}

// Add creates one video through the same optimistic path the TUI uses and
// prints the confirmed record.
func Add(ctx context.Context, opts Options, req AddRequest, out, logw io.Writer) error {
	slot, err := parseSlot(req.Profile)
	if err != nil {
		return err
	}

	ctrl, err := openSession(ctx, opts, req.User, req.Platform, logw)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	v, err := ctrl.SubmitNew(ctx, slot, req.Title, req.Link)
	if err != nil {
		return fmt.Errorf("add video: %w", err)
	}
	fmt.Fprintf(out, "added %s: %s (%s, %s)\n", v.ID, v.Title, v.Profile, v.Status)
	return nil
}

func openSession(ctx context.Context, opts Options, user, platform string, logw io.Writer) (*dashboard.Controller, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	logger, err := stderrLogger(logw, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	p := model.Instagram
	if strings.TrimSpace(platform) != "" {
		if p, err = model.ParsePlatform(platform); err != nil {
			return nil, err
		}
	}

	ctrl, err := newController(ctx, cfg, logger, nil)
	if err != nil {
		return nil, err
	}
	if err := ctrl.SelectUser(ctx, user); err != nil {
		ctrl.Close()
		return nil, err
	}
	if err := ctrl.SelectPlatform(p); err != nil {
		ctrl.Close()
		return nil, err
	}
	return ctrl, nil
}

// parseSlot accepts "Profile 2", "profile2" or "2".
func parseSlot(s string) (model.Slot, error) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	norm = strings.TrimPrefix(norm, "profile")
	for _, slot := range model.Slots() {
		if norm == fmt.Sprint(slot.Index()+1) {
			return slot, nil
		}
	}
	return "", fmt.Errorf("%w: %q", model.ErrUnknownSlot, s)
}

func writeSummary(w io.Writer, s dashboard.Session, sections []view.Section) {
	uploaded, total := view.Totals(sections)
	fmt.Fprintf(w, "%s / %s  %d/%d uploaded\n", s.User, s.Platform, uploaded, total)
	for _, sec := range sections {
		fmt.Fprintf(w, "\n%s  %s  %s\n", sec.Label, sec.CountLabel(), sec.PercentLabel())
		for _, v := range sec.Videos {
			fmt.Fprintf(w, "  [%-8s] %s  %s\n", v.Status, v.Title, v.Link)
		}
	}
}
