package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprintdeck/sprintdeck/internal/errs"
)

func TestStripThinking(t *testing.T) {
	raw := "<think>\nhmm, the user wants JSON\n</think>\n{\"a\":1}"
	assert.Equal(t, `{"a":1}`, StripThinking(raw))

	assert.Equal(t, "plain text", StripThinking("plain text"))
}

func TestDecodeReplyStrictJSON(t *testing.T) {
	var out struct {
		Priority string `json:"priority"`
	}
	require.NoError(t, DecodeReply(`{"priority":"high"}`, &out))
	assert.Equal(t, "high", out.Priority)
}

func TestDecodeReplyRecoversObjectFromProse(t *testing.T) {
	var out struct {
		Response string `json:"response"`
	}
	raw := "Sure! Here is the JSON you asked for:\n{\"response\":\"do the thing\"}\nHope that helps."
	require.NoError(t, DecodeReply(raw, &out))
	assert.Equal(t, "do the thing", out.Response)
}

func TestDecodeReplyRecoversArray(t *testing.T) {
	var out []struct {
		Area string `json:"area"`
	}
	raw := "Analysis complete.\n[{\"area\":\"review\"},{\"area\":\"qa\"}]"
	require.NoError(t, DecodeReply(raw, &out))
	require.Len(t, out, 2)
	assert.Equal(t, "review", out[0].Area)
}

func TestDecodeReplySkipsThinkingMarkup(t *testing.T) {
	var out struct {
		Priority string `json:"priority"`
	}
	raw := "<think>{\"priority\":\"wrong\"}</think>{\"priority\":\"low\"}"
	require.NoError(t, DecodeReply(raw, &out))
	assert.Equal(t, "low", out.Priority)
}

func TestDecodeReplyFailure(t *testing.T) {
	var out struct{}
	err := DecodeReply("I cannot answer that in JSON, sorry.", &out)
	require.ErrorIs(t, err, errs.UpstreamUnavailable)
}
