package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/strata/pkg/graph"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// GraphListModel - Interactive graph file selection
// =============================================================================

// GraphFile is a graph input found on disk.
type GraphFile struct {
	Path     string
	Format   graph.Format
	Size     int64
	Modified time.Time
}

// findGraphFiles lists the graph inputs directly in dir, sorted by name.
// Files produced by 'layout' are skipped.
func findGraphFiles(dir string) ([]GraphFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []GraphFile
	for _, e := range entries {
		if e.IsDir() || strings.Contains(e.Name(), layoutInfix) {
			continue
		}
		format, err := graph.FormatFromPath(e.Name())
		if err != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, GraphFile{
			Path:     filepath.Join(dir, e.Name()),
			Format:   format,
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// GraphListModel is the bubbletea model for interactive graph selection.
type GraphListModel struct {
	Files    []GraphFile
	Cursor   int
	Selected *GraphFile
	Height   int
	Offset   int
}

// NewGraphListModel creates a new graph list model.
func NewGraphListModel(files []GraphFile) GraphListModel {
	return GraphListModel{Files: files, Height: 15}
}

func (m GraphListModel) Init() tea.Cmd {
	return nil
}

func (m GraphListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Files)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Files) == 0 {
				return m, nil
			}
			f := m.Files[m.Cursor]
			m.Selected = &f
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m GraphListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Graph"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ lay out  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Files))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		f := m.Files[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			filepath.Base(f.Path),
			string(f.Format),
			formatSize(f.Size),
			formatRelativeTime(f.Modified),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("", "File", "Format", "Size", "Modified").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 2 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return StyleValue
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.Files)), len(m.Files))))

	return b.String()
}

// pickCommand creates the pick command, which selects a graph from a
// directory interactively and lays it out.
func (c *CLI) pickCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "pick [dir]",
		Short: "Choose a graph interactively and lay it out",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			files, err := findGraphFiles(dir)
			if err != nil {
				return fmt.Errorf("list %s: %w", dir, err)
			}
			if len(files) == 0 {
				printInfo("No graph files in %s", dir)
				return nil
			}

			final, err := tea.NewProgram(NewGraphListModel(files)).Run()
			if err != nil {
				return err
			}
			m, ok := final.(GraphListModel)
			if !ok || m.Selected == nil {
				return nil
			}

			runner, opts, err := c.prepare(cmd, &flags)
			if err != nil {
				return err
			}
			defer runner.Close()
			return c.runLayout(cmd.Context(), runner, m.Selected.Path, string(m.Selected.Format), flags.outDir, opts)
		},
	}
	flags.register(cmd)

	return cmd
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

func formatSize(n int64) string {
	switch {
	case n < 1<<10:
		return fmt.Sprintf("%d B", n)
	case n < 1<<20:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	}
}
