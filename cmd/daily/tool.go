package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/entrhq/daily/pkg/tools"
)

func newTimeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "time",
		Short: "Show the current time and relative-date hints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTool(cmd, "get_current_time", nil)
		},
	}
}

func newToolCmd(a *app) *cobra.Command {
	var (
		call bool
		list bool
	)

	cmd := &cobra.Command{
		Use:   "tool [name]",
		Short: "Run a tool through the XML tool interface",
		Long: `Run one of the assistant tools. The <arguments> XML block is read from stdin.

With --call, stdin holds a complete tool call instead:

  <tool>
  <server_name>local</server_name>
  <tool_name>add_diary</tool_name>
  <arguments><content>...</content></arguments>
  </tool>`,
		Example: `  echo '<arguments><tag>work</tag></arguments>' | daily tool search_diary
  daily tool --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return a.listTools(cmd)
			}

			input, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}

			if call {
				registry, err := a.registry()
				if err != nil {
					return err
				}
				result, _, err := registry.DispatchText(cmd.Context(), string(input))
				if err != nil {
					return err
				}
				a.print(cmd, result)
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("tool name is required (or use --call / --list)")
			}
			return a.runTool(cmd, args[0], input)
		},
	}

	cmd.Flags().BoolVar(&call, "call", false, "read a complete <tool> call from stdin")
	cmd.Flags().BoolVar(&list, "list", false, "list available tools")
	cmd.MarkFlagsMutuallyExclusive("call", "list")
	return cmd
}

// runTool dispatches name with argsXML through the registry.
func (a *app) runTool(cmd *cobra.Command, name string, argsXML []byte) error {
	registry, err := a.registry()
	if err != nil {
		return err
	}
	var block tools.ArgumentsBlock
	if len(strings.TrimSpace(string(argsXML))) > 0 {
		if err := tools.UnmarshalXMLWithFallback(argsXML, &block); err != nil {
			return fmt.Errorf("invalid arguments XML: %w", err)
		}
	}
	result, _, err := registry.Dispatch(cmd.Context(), &tools.ToolCall{
		ToolName:  name,
		Arguments: block,
	})
	if err != nil {
		return err
	}
	a.print(cmd, result)
	return nil
}

func (a *app) listTools(cmd *cobra.Command) error {
	registry, err := a.registry()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, t := range registry.List() {
		name := t.Name()
		if !a.plain {
			name = headerStyle.Render(name)
		}
		fmt.Fprintf(out, "%s\n  %s\n", name, t.Description())
	}
	return nil
}
