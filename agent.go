package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cliptranslate/config"
	"cliptranslate/hotkey"
	"cliptranslate/notify"
	"cliptranslate/platform"
	"cliptranslate/storage"
	"cliptranslate/translate"
	"cliptranslate/web"
)

// Agent coordinates hotkey detection, clipboard capture, and translation
type Agent struct {
	cfg       *config.Config
	keys      platform.KeySource
	clipboard platform.Clipboard
	orch      *translate.Orchestrator
	db        *storage.DB
	web       *web.Server
}

// NewAgent creates a new agent instance. db and srv may be nil when history
// or the dashboard are disabled.
func NewAgent(cfg *config.Config, svc translate.Service, db *storage.DB, srv *web.Server) *Agent {
	a := &Agent{
		cfg:       cfg,
		keys:      platform.NewKeySource(),
		clipboard: platform.NewClipboard(),
		db:        db,
		web:       srv,
	}
	a.orch = translate.NewOrchestrator(svc, a.handleOutcome)
	return a
}

// hotkeySpec builds the key spec from configuration.
func (a *Agent) hotkeySpec() (hotkey.Spec, error) {
	combo, err := config.ParseHotkey(a.cfg.Hotkey.Combo)
	if err != nil {
		return hotkey.Spec{}, fmt.Errorf("failed to parse hotkey: %w", err)
	}

	code, err := hotkey.KeyCode(combo.Key)
	if err != nil {
		return hotkey.Spec{}, fmt.Errorf("failed to resolve key code: %w", err)
	}

	mode := hotkey.SinglePress
	if a.cfg.Hotkey.Mode == "double" {
		mode = hotkey.DoublePress
	}

	return hotkey.Spec{
		Ctrl:    combo.Ctrl,
		Alt:     combo.Alt,
		Shift:   combo.Shift,
		KeyCode: code,
		Mode:    mode,
	}, nil
}

// Run starts the agent's main event loop
func (a *Agent) Run(ctx context.Context) error {
	spec, err := a.hotkeySpec()
	if err != nil {
		return err
	}

	activations, err := a.keys.Listen(ctx, spec)
	if err != nil {
		return fmt.Errorf("failed to start hotkey listener: %w", err)
	}

	slog.Info("ClipTranslate started",
		"hotkey", a.cfg.Hotkey.Combo,
		"mode", spec.Mode,
		"model", a.cfg.Translation.Model)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-activations:
			a.handleActivation(ctx)
		}
	}
}

// handleActivation reads the clipboard and submits its text for translation.
// An activation that arrives while a request is in flight is dropped.
func (a *Agent) handleActivation(ctx context.Context) {
	text, err := a.clipboard.Get()
	if err != nil {
		slog.Error("Failed to read clipboard", "error", err)
		notify.Show("Translation failed", "Could not read clipboard")
		return
	}

	if strings.TrimSpace(text) == "" {
		slog.Info("Clipboard empty, ignoring activation")
		return
	}

	if !a.orch.Submit(ctx, text) {
		slog.Warn("Translation already in flight, ignoring activation")
		notify.Show("Translator busy", "A translation is already in progress")
		return
	}

	slog.Info("Translation started", "chars", len(text))
	if a.web != nil {
		a.web.SetStatus("translating")
	}
}

// handleOutcome runs on the orchestrator's goroutine once a request reaches
// a terminal state.
func (a *Agent) handleOutcome(req translate.Request, out translate.Outcome) {
	latency := time.Since(req.SubmittedAt)

	slog.Info("Translation finished",
		"outcome", out.Kind,
		"attempts", req.Attempts,
		"latency", latency.Round(time.Millisecond))

	switch out.Kind {
	case translate.Success:
		if a.cfg.Translation.CopyResult {
			a.copyResult(out.Text)
		}
		notify.Show("Translation complete", truncateForDisplay(out.Text))
	case translate.Truncated:
		if a.cfg.Translation.CopyResult {
			a.copyResult(out.Text)
		}
		notify.Show("Translation truncated", truncateForDisplay(out.Text))
	case translate.Blocked:
		notify.Show("Translation blocked", out.Detail())
	case translate.Failed:
		notify.Show("Translation failed", out.Message)
	}

	if a.cfg.Translation.SaveHistory && a.db != nil {
		a.record(req, out, latency)
	}

	if a.web != nil {
		a.web.SetStatus("idle")
	}
}

// copyResult writes translated text back to the clipboard.
func (a *Agent) copyResult(text string) {
	if err := a.clipboard.Set(text); err != nil {
		slog.Error("Failed to copy result to clipboard", "error", err)
	}
}

// record persists the finished translation and pushes it to the dashboard.
func (a *Agent) record(req translate.Request, out translate.Outcome, latency time.Duration) {
	t := &storage.Translation{
		Model:       a.cfg.Translation.Model,
		PromptMode:  a.cfg.Translation.PromptMode,
		SourceText:  req.SourceText,
		SourceChars: len([]rune(req.SourceText)),
		Outcome:     out.Kind.String(),
		ResultText:  out.Text,
		Detail:      out.Detail(),
		Attempts:    req.Attempts,
		LatencyMs:   latency.Milliseconds(),
	}

	if err := a.db.SaveTranslation(t); err != nil {
		slog.Error("Failed to save translation history", "error", err)
		return
	}

	if a.web != nil {
		a.web.BroadcastOutcome(t)
	}
}

// truncateForDisplay shortens text to fit a notification body.
func truncateForDisplay(text string) string {
	const maxLen = 200
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "…"
}
