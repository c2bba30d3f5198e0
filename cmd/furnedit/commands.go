package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"furnedit/internal/docdiff"
	"furnedit/internal/furni"
	"furnedit/internal/layers"
	"furnedit/internal/ui"
)

var errNoChange = errors.New("document unchanged")

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newEditCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit FILE",
		Short: "Open FILE in the interactive layers editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := opts.setup(ctx)
			if err != nil {
				return err
			}
			defer e.close(context.WithoutCancel(ctx))

			doc, err := e.store.Load(args[0])
			if err != nil {
				return err
			}
			e.recorder.StartSession(ctx, e.store.Path(args[0]))
			e.log.Info("editor started", zap.String("path", e.store.Path(args[0])))

			model := ui.NewAppModel(doc, ui.Options{
				File:         args[0],
				Store:        e.store,
				HistoryLimit: e.cfg.History.Limit,
				Autosave:     e.cfg.Autosave,
				Logger:       e.log,
				Recorder:     e.recorder,
			})
			p := tea.NewProgram(model.AsTeaModel(), tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run editor: %w", err)
			}
			if model.Dirty() {
				e.log.Warn("quit with unsaved changes", zap.String("file", args[0]))
			}
			return nil
		},
	}
}

func newLayersCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layers FILE",
		Short: "List the layers of a visualization in stacking order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close(context.WithoutCancel(cmd.Context()))

			doc, err := e.store.Load(args[0])
			if err != nil {
				return err
			}
			if len(doc.Visualizations) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no visualizations")
				return nil
			}
			idx := opts.vizIndex()
			if err := checkViz(doc, idx); err != nil {
				return err
			}
			ed := layers.New(doc, nil)
			ed.SelectVisualization(idx)
			printPanel(cmd.OutOrStdout(), ed.Panel())
			return nil
		},
	}
	addVizFlag(cmd, opts)
	return cmd
}

func printPanel(w io.Writer, p layers.Panel) {
	s := p.Settings
	fmt.Fprintf(w, "%s  layerCount %d  animations %d  directions %d\n",
		p.Visualizations[p.Selected].Label, s.LayerCount, s.Animations, s.Directions)
	if len(p.Layers) == 0 {
		fmt.Fprintln(w, "no layers")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle }).
		Headers("ID", "Z", "ALPHA", "INK", "TAG", "IGNORE MOUSE")
	for _, r := range p.Layers {
		t.Row(r.ID, r.Value(layers.FieldZ), r.Value(layers.FieldAlpha),
			r.Value(layers.FieldInk), r.Value(layers.FieldTag), r.Value(layers.FieldIgnoreMouse))
	}
	fmt.Fprintln(w, t.String())
}

func newAddLayerCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-layer FILE",
		Short: "Add a default layer under the lowest free id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.mutate(cmd, args[0], func(ed *layers.Editor, viz int) error {
				id, ok := ed.AddLayer(viz)
				if !ok {
					return errNoChange
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added layer %s\n", id)
				return nil
			})
		},
	}
	addVizFlag(cmd, opts)
	addDryRunFlag(cmd, opts)
	return cmd
}

func newDeleteLayerCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete-layer FILE ID",
		Short: "Delete layer ID",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.mutate(cmd, args[0], func(ed *layers.Editor, viz int) error {
				if !ed.DeleteLayer(viz, args[1]) {
					return fmt.Errorf("layer %s not found", args[1])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted layer %s\n", args[1])
				return nil
			})
		},
	}
	addVizFlag(cmd, opts)
	addDryRunFlag(cmd, opts)
	return cmd
}

func newSetLayerCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-layer FILE ID FIELD VALUE",
		Short: "Set one field of layer ID",
		Long: `Set one field of layer ID. FIELD is one of: ` + layerFieldNames() + `.
Ink and tag accept None to clear the field. A missing layer is created.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, value := args[1], args[3]
			field, ok := layers.ParseLayerField(args[2])
			if !ok {
				return fmt.Errorf("unknown layer field %q (want %s)", args[2], layerFieldNames())
			}
			return opts.mutate(cmd, args[0], func(ed *layers.Editor, viz int) error {
				if !ed.UpdateLayer(viz, id, field, value) {
					return fmt.Errorf("invalid %s: %q", field.Label(), value)
				}
				return nil
			})
		},
	}
	addVizFlag(cmd, opts)
	addDryRunFlag(cmd, opts)
	return cmd
}

func newSetVizCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-viz FILE FIELD VALUE",
		Short: "Set size, angle or layerCount of a visualization",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, ok := layers.ParseVizField(args[1])
			if !ok {
				return fmt.Errorf("unknown visualization field %q (want %s)", args[1], vizFieldNames())
			}
			return opts.mutate(cmd, args[0], func(ed *layers.Editor, viz int) error {
				if !ed.UpdateViz(viz, field, args[2]) {
					return errNoChange
				}
				return nil
			})
		},
	}
	addVizFlag(cmd, opts)
	addDryRunFlag(cmd, opts)
	return cmd
}

// mutate loads file, applies fn through an editor and writes the result, or
// prints the merge patch when --dry-run is set.
func (o *rootOptions) mutate(cmd *cobra.Command, file string, fn func(ed *layers.Editor, viz int) error) error {
	ctx := cmd.Context()
	e, err := o.setup(ctx)
	if err != nil {
		return err
	}
	defer e.close(context.WithoutCancel(ctx))

	doc, err := e.store.Load(file)
	if err != nil {
		return err
	}
	viz := o.vizIndex()
	if err := checkViz(doc, viz); err != nil {
		return err
	}

	path := e.store.Path(file)
	e.recorder.StartSession(ctx, path)
	var next *furni.Document
	ed := layers.New(doc, func(d *furni.Document) { next = d },
		layers.WithObserver(layers.NewMultiObserver(layers.NewLogObserver(e.log), e.recorder)))
	if err := fn(ed, viz); err != nil {
		return err
	}
	if next == nil {
		return errNoChange
	}

	out := cmd.OutOrStdout()
	changes, err := docdiff.Diff(doc, next)
	if err != nil {
		return fmt.Errorf("diff: %w", err)
	}
	if o.dryRun {
		if len(changes) == 0 {
			fmt.Fprintln(out, "no changes")
		}
		for _, c := range changes {
			fmt.Fprintln(out, c.String())
		}
		return nil
	}

	err = e.store.Save(file, next)
	e.recorder.RecordSave(path, err)
	if err != nil {
		e.log.Error("save failed", zap.String("path", path), zap.Error(err))
		return err
	}
	e.log.Info("saved", zap.String("path", path))
	fmt.Fprintf(out, "wrote %s: %s\n", path, docdiff.Summary(changes, 0))
	return nil
}

func checkViz(doc *furni.Document, index int) error {
	if doc.Visualization(index) == nil {
		return fmt.Errorf("visualization %d not found (document has %d)", index+1, len(doc.Visualizations))
	}
	return nil
}

func layerFieldNames() string {
	names := make([]string, 0, len(layers.LayerFields()))
	for _, f := range layers.LayerFields() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func vizFieldNames() string {
	names := make([]string, 0, len(layers.VizFields()))
	for _, f := range layers.VizFields() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
