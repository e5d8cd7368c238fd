package refdata

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jdvermeer/screenlist/internal/screening"
	"github.com/jdvermeer/screenlist/internal/tabular"
)

// Build loads both reference groups described by the manifest.
//
// The two groups load in parallel. A missing reference directory is not an
// error: the server starts with empty groups and every row screens as safe.
// Individual files that are missing or unreadable are logged and skipped.
func Build(ctx context.Context, m Manifest) (screening.Groups, error) {
	groups := screening.EmptyGroups()

	if _, err := os.Stat(m.Dir); err != nil {
		slog.Warn("reference directory not found, screening with empty groups",
			"dir", m.Dir,
			"error", err,
		)
		return groups, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loadGroup(ctx, m.Dir, m.Groups.Imneo, &groups.Imneo)
	})
	g.Go(func() error {
		return loadGroup(ctx, m.Dir, m.Groups.XClient, &groups.XClient)
	})
	if err := g.Wait(); err != nil {
		return screening.Groups{}, err
	}

	return groups, nil
}

// loadGroup folds each listed file into the group's name and company sets.
func loadGroup(ctx context.Context, dir string, files []string, group *screening.Group) error {
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(dir, name)
		contrib, err := loadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				slog.Warn("reference file not found, skipping",
					"group", group.Name,
					"file", path,
				)
			} else {
				slog.Error("reference file failed to load, skipping",
					"group", group.Name,
					"file", path,
					"error", err,
				)
			}
			continue
		}

		for _, n := range contrib.names {
			group.Names.Add(n)
		}
		for _, c := range contrib.companies {
			group.Companies.Add(c)
		}

		slog.Debug("reference file loaded",
			"group", group.Name,
			"file", name,
			"rows", contrib.rows,
			"skipped_rows", contrib.skipped,
			"names", len(contrib.names),
			"companies", len(contrib.companies),
		)
	}

	slog.Info("reference group ready",
		"group", group.Name,
		"names", group.Names.Len(),
		"companies", group.Companies.Len(),
	)
	return nil
}

// contribution is what one reference file adds to its group.
type contribution struct {
	rows      int
	skipped   int
	names     []string
	companies []string
}

// loadFile decodes one reference file and extracts normalized name and
// company keys. Decoding is lenient: rows wider than the header are dropped,
// matching how reference exports with stray delimiters have been handled
// historically. Unlike uploads, a name key here does not require both name
// columns: whatever name fields resolve contribute on their own.
func loadFile(path string) (contribution, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return contribution{}, err
	}

	table, err := tabular.DecodeLenient(data, path)
	if err != nil {
		return contribution{}, err
	}

	cols := screening.ReferenceColumns(table.Headers)

	contrib := contribution{
		rows:    len(table.Rows),
		skipped: table.SkippedRows,
	}

	for i := range table.Rows {
		var first, last string
		if cols.First >= 0 {
			first = screening.Normalize(table.Cell(i, cols.First))
		}
		if cols.Last >= 0 {
			last = screening.Normalize(table.Cell(i, cols.Last))
		}
		if name := strings.TrimSpace(first + " " + last); name != "" {
			contrib.names = append(contrib.names, name)
		}

		if cols.Company >= 0 {
			if company := screening.Normalize(table.Cell(i, cols.Company)); company != "" {
				contrib.companies = append(contrib.companies, company)
			}
		}
	}

	return contrib, nil
}
