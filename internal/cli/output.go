package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

// OutputFormatter handles the three output modes every command supports:
// JSON, quiet (id only), and human-readable.
type OutputFormatter struct {
	JSON  bool
	Quiet bool
}

// formatterFromFlags reads the shared --json/--quiet flags.
func formatterFromFlags(cmd *cobra.Command) *OutputFormatter {
	jsonOut, _ := cmd.Flags().GetBool("json")
	quiet, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{JSON: jsonOut, Quiet: quiet}
}

// addOutputFlags registers the shared output-mode flags on a command.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
}

// Success reports a successful operation result.
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		if idGetter, ok := data.(interface{ GetID() int64 }); ok {
			fmt.Printf("%d\n", idGetter.GetID())
			return nil
		}
	}

	if f.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		return enc.Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	fmt.Printf("%+v\n", data)
	return nil
}

// Successf reports a successful operation with a formatted human message.
func (f *OutputFormatter) Successf(data any, format string, args ...any) error {
	if f.JSON || f.Quiet {
		return f.Success(data)
	}
	fmt.Println(successStyle.Render("✓ ") + fmt.Sprintf(format, args...))
	return nil
}

// Error reports a failed operation.
func (f *OutputFormatter) Error(code, message string) error {
	if f.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": false,
			"error":   map[string]any{"code": code, "message": message},
		})
	}
	fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+message)
	return nil
}

// field renders a "Label: value" line for human output.
func field(label, value string) string {
	return labelStyle.Render(label+": ") + value
}

// orEmpty renders an optional string, with a placeholder for NULL.
func orEmpty(p *string) string {
	if p == nil {
		return subtleStyle.Render("—")
	}
	return *p
}

// orEmptyID renders an optional id, with a placeholder for NULL.
func orEmptyID(p *int64) string {
	if p == nil {
		return subtleStyle.Render("—")
	}
	return fmt.Sprintf("%d", *p)
}
