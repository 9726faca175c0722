package tools

import (
	"bytes"
	"context"
	"encoding/xml"
	"testing"

	"github.com/entrhq/daily/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoTool struct{ name string }

func (e echoTool) Name() string                   { return e.name }
func (e echoTool) Description() string            { return "echoes its text argument" }
func (e echoTool) Schema() map[string]interface{} { return BaseToolSchema(nil, nil) }

func (e echoTool) Execute(_ context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var args struct {
		XMLName xml.Name `xml:"arguments"`
		Text    string   `xml:"text"`
	}
	if err := UnmarshalXMLWithFallback(argsXML, &args); err != nil {
		return "", nil, err
	}
	return args.Text, map[string]interface{}{"tool": e.name}, nil
}

func TestRegistryDispatch(t *testing.T) {
	r, err := NewRegistry(echoTool{name: "echo"}, echoTool{name: "alpha"})
	require.NoError(t, err)

	out, meta, err := r.DispatchText(context.Background(),
		"<tool><tool_name>echo</tool_name><arguments><text>hi & bye</text></arguments></tool>")
	require.NoError(t, err)
	assert.Equal(t, "hi & bye", out)
	assert.Equal(t, "echo", meta["tool"])

	out, _, err = r.Dispatch(context.Background(), &ToolCall{ToolName: "missing"})
	require.NoError(t, err)
	assert.Equal(t, "Unknown tool: missing", out)

	_, _, err = r.Dispatch(context.Background(), &ToolCall{})
	assert.Error(t, err)
}

func TestRegistryRegisterAndList(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	require.NoError(t, r.Register(echoTool{name: "zeta"}))
	require.NoError(t, r.Register(echoTool{name: "alpha"}))
	assert.Error(t, r.Register(echoTool{name: "zeta"}), "duplicate names are rejected")
	assert.Error(t, r.Register(nil))

	var names []string
	for _, tool := range r.List() {
		names = append(names, tool.Name())
	}
	assert.Equal(t, []string{"alpha", "zeta"}, names)

	_, ok := r.Get("alpha")
	assert.True(t, ok)

	_, err = NewRegistry(echoTool{name: "dup"}, echoTool{name: "dup"})
	assert.Error(t, err)
}

func TestDispatchLogsArgumentNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, logging.Setup(logging.Options{Level: logging.LevelDebug, Console: &buf}))
	t.Cleanup(func() { _ = logging.Setup(logging.Options{Level: logging.LevelWarn}) })

	r, err := NewRegistry(echoTool{name: "echo"})
	require.NoError(t, err)

	_, _, err = r.DispatchText(context.Background(),
		"<tool><tool_name>echo</tool_name><arguments><text>private words</text><mood>calm</mood></arguments></tool>")
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "dispatching echo with arguments [mood, text]")
	assert.NotContains(t, buf.String(), "private words")
}
