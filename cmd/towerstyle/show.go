package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/towerstyle/internal/document"
	"github.com/alexisbeaulieu97/towerstyle/internal/style"
	"github.com/alexisbeaulieu97/towerstyle/internal/valuestore"
)

type showOptions struct {
	ids        bool
	jsonOutput bool
}

var (
	showFolderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	showMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	showEnumStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).MarginRight(1)
)

func newShowCmd(app *AppContext) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show <style.json>",
		Short: "Print the node tree of a style document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.show")
			doc, err := app.Editor.Load(args[0])
			if err != nil {
				logger.Error(ctx, "load failed", "path", args[0], "error", err)
				return newCommandError("show style", args[0], err, "Run 'towerstyle new' to create a document, or fix the reported line.")
			}

			if opts.jsonOutput {
				return document.Encode(cmd.OutOrStdout(), doc)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTree(doc, opts.ids))
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d nodes, %d value producers\n",
				style.Count(doc), valuestore.Build(doc).Len())
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.ids, "ids", false, "Include node ids")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the document as JSON")

	return cmd
}

// renderTree mirrors the walk order: each visited node opens a subtree that
// is closed on leave.
func renderTree(doc *style.StyleDefinition, ids bool) string {
	var stack []*tree.Tree
	var root *tree.Tree

	style.Walk(doc, func(n style.Node, method style.Method) style.ControlFlow {
		if method == style.Leave {
			root = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			return style.Continue
		}

		t := tree.Root(nodeLabel(n, ids)).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(showEnumStyle)
		if len(stack) > 0 {
			stack[len(stack)-1].Child(t)
		}
		stack = append(stack, t)
		return style.Continue
	})

	if root == nil {
		return ""
	}
	return root.String()
}

func nodeLabel(n style.Node, ids bool) string {
	name := n.DisplayName()
	if _, ok := n.(style.Container); ok {
		name = showFolderStyle.Render(name)
	}
	label := fmt.Sprintf("%s %s", name, showMutedStyle.Render(string(n.Kind())))
	if ids {
		label += " " + showMutedStyle.Render(n.NodeID().String())
	}
	return label
}
