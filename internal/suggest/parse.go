package suggest

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/sprintdeck/sprintdeck/internal/errs"
	"github.com/sprintdeck/sprintdeck/pkg/utils"
)

var (
	thinkRE = regexp.MustCompile(`(?s)<think>.*?</think>`)
	objRE   = regexp.MustCompile(`(?s)\{.*\}`)
	arrRE   = regexp.MustCompile(`(?s)\[.*\]`)
)

// StripThinking removes reasoning-model <think> markup from a reply.
func StripThinking(s string) string {
	return strings.TrimSpace(thinkRE.ReplaceAllString(s, ""))
}

// DecodeReply parses a model reply into v: strict JSON first, then a
// recovered object or array embedded in surrounding prose. Failures wrap
// errs.UpstreamUnavailable so callers fall back uniformly.
func DecodeReply(raw string, v any) error {
	cleaned := StripThinking(raw)
	if err := utils.Json.Unmarshal([]byte(cleaned), v); err == nil {
		return nil
	}
	if m := objRE.FindString(cleaned); m != "" {
		if err := utils.Json.Unmarshal([]byte(m), v); err == nil {
			return nil
		}
	}
	if m := arrRE.FindString(cleaned); m != "" {
		if err := utils.Json.Unmarshal([]byte(m), v); err == nil {
			return nil
		}
	}
	return errors.Wrap(errs.UpstreamUnavailable, "completion reply is not valid JSON")
}
