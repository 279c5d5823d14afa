package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hupe1980/refer"
	"github.com/hupe1980/refer/codec"
	"github.com/hupe1980/refer/dataset"
	"github.com/hupe1980/refer/eval"
	"github.com/hupe1980/refer/mask"
	"github.com/hupe1980/refer/model"
)

func datasetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the known datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSPLIT SCHEMES\tIMAGE DIR")
			for _, name := range dataset.Names() {
				info, err := dataset.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, strings.Join(info.SplitBys, ","), info.ImageDir)
			}
			return w.Flush()
		},
	}
}

func (c *cli) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print record counts of a dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := c.app.open(cmd.Context())
			if err != nil {
				return err
			}

			s := r.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dataset:     %s (%s)\n", r.Name(), r.SplitBy())
			fmt.Fprintf(out, "refs:        %d\n", s.Refs)
			fmt.Fprintf(out, "sentences:   %d\n", s.Sentences)
			fmt.Fprintf(out, "annotations: %d\n", s.Annotations)
			fmt.Fprintf(out, "images:      %d\n", s.Images)
			fmt.Fprintf(out, "categories:  %d\n", s.Categories)

			splits := make([]string, 0, len(s.Splits))
			for split := range s.Splits {
				splits = append(splits, split)
			}
			slices.Sort(splits)
			for _, split := range splits {
				fmt.Fprintf(out, "split %-6s %d\n", split+":", s.Splits[split])
			}
			return nil
		},
	}
}

func (c *cli) refsCommand() *cobra.Command {
	var (
		imageIDs, catIDs, refIDs []int64
		split                    string
		sentences                bool
	)

	cmd := &cobra.Command{
		Use:   "refs",
		Short: "List ref ids matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := c.app.open(cmd.Context())
			if err != nil {
				return err
			}

			ids, err := r.RefIDs(refer.RefFilter{
				ImageIDs: toIDs[model.ImageID](imageIDs),
				CatIDs:   toIDs[model.CatID](catIDs),
				RefIDs:   toIDs[model.RefID](refIDs),
				Split:    split,
			})
			if err != nil {
				return err
			}
			if !sentences {
				return printIDs(cmd.OutOrStdout(), ids)
			}

			refs, err := r.LoadRefs(ids...)
			if err != nil {
				return err
			}
			for _, ref := range refs {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", ref.ID, ref.Split, strings.Join(ref.Texts(), " | "))
			}
			return nil
		},
	}

	cmd.Flags().Int64SliceVar(&imageIDs, "image-ids", nil, "restrict to these images")
	cmd.Flags().Int64SliceVar(&catIDs, "cat-ids", nil, "restrict to these categories")
	cmd.Flags().Int64SliceVar(&refIDs, "ref-ids", nil, "restrict to these refs")
	cmd.Flags().StringVar(&split, "split", "", "split: train, val, test, testA..testC, testAB, testBC, testAC")
	cmd.Flags().BoolVar(&sentences, "sentences", false, "print split and sentences of every ref")
	return cmd
}

func (c *cli) annsCommand() *cobra.Command {
	var imageIDs, catIDs, refIDs []int64

	cmd := &cobra.Command{
		Use:   "anns",
		Short: "List annotation ids matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := c.app.open(cmd.Context())
			if err != nil {
				return err
			}

			ids, err := r.AnnIDs(refer.AnnFilter{
				ImageIDs: toIDs[model.ImageID](imageIDs),
				CatIDs:   toIDs[model.CatID](catIDs),
				RefIDs:   toIDs[model.RefID](refIDs),
			})
			if err != nil {
				return err
			}
			return printIDs(cmd.OutOrStdout(), ids)
		},
	}

	cmd.Flags().Int64SliceVar(&imageIDs, "image-ids", nil, "restrict to these images")
	cmd.Flags().Int64SliceVar(&catIDs, "cat-ids", nil, "restrict to these categories")
	cmd.Flags().Int64SliceVar(&refIDs, "ref-ids", nil, "intersect with the annotations of these refs")
	return cmd
}

func (c *cli) imgsCommand() *cobra.Command {
	var (
		refIDs []int64
		paths  bool
	)

	cmd := &cobra.Command{
		Use:   "imgs",
		Short: "List image ids, optionally of the given refs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := c.app.open(cmd.Context())
			if err != nil {
				return err
			}

			ids, err := r.ImgIDs(toIDs[model.RefID](refIDs)...)
			if err != nil {
				return err
			}
			if !paths {
				return printIDs(cmd.OutOrStdout(), ids)
			}
			for _, id := range ids {
				p, err := r.ImagePath(id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", id, p)
			}
			return nil
		},
	}

	cmd.Flags().Int64SliceVar(&refIDs, "ref-ids", nil, "images of these refs")
	cmd.Flags().BoolVar(&paths, "paths", false, "print the image file path")
	return cmd
}

func (c *cli) boxCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "box <ref-id>",
		Short: "Print the bounding box of a ref",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRefID(args[0])
			if err != nil {
				return err
			}
			r, err := c.app.open(cmd.Context())
			if err != nil {
				return err
			}

			box, err := r.RefBox(id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), box)
			return nil
		},
	}
}

func (c *cli) maskCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "mask <ref-id>",
		Short: "Rasterize the segmentation of a ref",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRefID(args[0])
			if err != nil {
				return err
			}
			r, err := c.app.open(cmd.Context())
			if err != nil {
				return err
			}

			m, err := r.MaskByID(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ref %d: %dx%d area %d\n", id, m.Mask.Width, m.Mask.Height, m.Area)

			if out == "" {
				return nil
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := png.Encode(f, toGray(m.Mask)); err != nil {
				_ = f.Close()
				return fmt.Errorf("encode %s: %w", out, err)
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the mask as a PNG file")
	return cmd
}

func (c *cli) evalCommand() *cobra.Command {
	var (
		results string
		format  string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Score generated expressions against the ground truth",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if results == "" {
				return fmt.Errorf("--results is required")
			}
			f, err := os.Open(results)
			if err != nil {
				return err
			}
			var res []eval.Result
			err = codec.DecodeReader(codec.Default, f, &res)
			_ = f.Close()
			if err != nil {
				return fmt.Errorf("read %s: %w", results, err)
			}

			r, err := c.app.open(cmd.Context())
			if err != nil {
				return err
			}

			ev, err := eval.Evaluate(cmd.Context(), r, res,
				eval.WithLogger(c.app.logger),
				eval.WithMetricsCollector(c.app.metrics),
			)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return writeEvaluation(w, format, eval.NewReport(r.Name(), r.SplitBy(), ev))
		},
	}

	cmd.Flags().StringVarP(&results, "results", "r", "", "JSON file of [{\"ref_id\", \"sent\"}]")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, yaml or html")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the report to this file")
	return cmd
}

func writeEvaluation(w io.Writer, format string, rep *eval.Report) error {
	switch format {
	case "text":
		for _, m := range rep.Methods {
			if _, err := fmt.Fprintf(w, "%s: %0.3f\n", m, rep.Eval[m]); err != nil {
				return err
			}
		}
		return nil
	case "json":
		return rep.WriteJSON(w)
	case "yaml":
		return rep.WriteYAML(w)
	case "html":
		return rep.WriteHTML(w)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func toIDs[T ~int64](xs []int64) []T {
	if len(xs) == 0 {
		return nil
	}
	out := make([]T, len(xs))
	for i, x := range xs {
		out[i] = T(x)
	}
	return out
}

func printIDs[T ~int64](w io.Writer, ids []T) error {
	for _, id := range ids {
		if _, err := fmt.Fprintln(w, int64(id)); err != nil {
			return err
		}
	}
	return nil
}

func parseRefID(s string) (model.RefID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ref id %q", s)
	}
	return model.RefID(id), nil
}

func toGray(b *mask.Bitmap) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.At(x, y) != 0 {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}
