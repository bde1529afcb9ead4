package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"jobtrack/internal/app"
	"jobtrack/internal/backup"
	configpkg "jobtrack/internal/config"
	"jobtrack/internal/doctor"
	"jobtrack/internal/model"
	"jobtrack/internal/stats"
	themepkg "jobtrack/internal/theme"
	"jobtrack/internal/version"
)

func newListCmd(a *cliApp) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			apps, err := a.loadApplications()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				b, err := json.MarshalIndent(apps, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(b))
				return err
			}
			if len(apps) == 0 {
				_, err := fmt.Fprintln(out, "No applications.")
				return err
			}
			_, err = fmt.Fprintln(out, applicationsTable(apps))
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the stored JSON instead of a table")
	return cmd
}

func applicationsTable(apps []model.Application) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Company", "Platform", "Resume", "Modified", "Status", "Date", "Notes")
	for i, x := range apps {
		modified := "No"
		if x.ResumeModified {
			modified = "Yes"
		}
		t.Row(
			strconv.Itoa(i+1),
			x.CompanyName,
			x.Platform.String(),
			x.ResumeVersion,
			modified,
			x.Status.String(),
			x.AppliedDate.String(),
			truncateCell(x.Notes, 40),
		)
	}
	return t.String()
}

func truncateCell(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "~"
}

func newStatsCmd(a *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print counts by resume version, platform and status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			apps, err := a.loadApplications()
			if err != nil {
				return err
			}
			sections := []struct {
				title  string
				series stats.Series
			}{
				{"Applications by Resume Version", stats.ByResumeVersion(apps)},
				{"Applications by Platform", stats.ByPlatform(apps)},
				{"Applications by Status", stats.ByStatus(apps)},
			}
			out := cmd.OutOrStdout()
			for i, s := range sections {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, s.title)
				if s.series.NoData {
					fmt.Fprintln(out, "No data available")
					continue
				}
				t := table.New().Border(lipgloss.NormalBorder()).Headers("Label", "Count")
				for _, b := range s.series.Bars {
					t.Row(b.Label, strconv.Itoa(b.Count))
				}
				fmt.Fprintln(out, t.String())
			}
			return nil
		},
	}
}

func newBackupCmd(a *cliApp) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a timestamped snapshot of the data file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := backupRoot(dir)
			if err != nil {
				return err
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			apps, err := st.Load()
			if err != nil {
				return err
			}
			entry, err := backup.NewService(a.logger).Snapshot(apps, st.Path(), root)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "snapshot: %s (%d applications, sha256 %s)\n", entry.File, entry.Records, entry.SHA256[:12])
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "Backup directory (default ~/.config/jobtrack/backups)")

	verify := &cobra.Command{
		Use:   "verify",
		Short: "Check snapshot checksums against the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := backupRoot(dir)
			if err != nil {
				return err
			}
			bad, err := backup.Verify(root)
			if err != nil {
				return err
			}
			if len(bad) > 0 {
				return fmt.Errorf("%d snapshot(s) missing or modified: %s", len(bad), strings.Join(bad, ", "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "backup: ok")
			return nil
		},
	}
	var overwrite bool
	restore := &cobra.Command{
		Use:   "restore <snapshot-file>",
		Short: "Replace the data file with a verified snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := backupRoot(dir)
			if err != nil {
				return err
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			unlock, err := st.Lock()
			if err != nil {
				return err
			}
			defer unlock()
			n, err := backup.NewService(a.logger).Restore(root, filepath.Base(args[0]), st, overwrite)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored %d applications into %s\n", n, st.Path())
			return nil
		},
	}
	restore.Flags().BoolVar(&overwrite, "overwrite", false, "Replace a data file that already has applications")

	cmd.AddCommand(verify, restore)
	return cmd
}

func backupRoot(dir string) (string, error) {
	if strings.TrimSpace(dir) != "" {
		return app.ResolveDataPath(dir)
	}
	return app.DefaultBackupRoot()
}

func newDoctorCmd(a *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the config file, data file and data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataPath, err := a.resolvedDataPath()
			if err != nil {
				return err
			}
			results, err := doctor.Check(cmd.Context(), a.configPath, dataPath)
			out := cmd.OutOrStdout()
			for _, r := range results {
				if r.OK() {
					fmt.Fprintf(out, "ok    %s: %s\n", r.Name, r.Detail)
				} else {
					fmt.Fprintf(out, "FAIL  %s: %v\n", r.Name, r.Err)
				}
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "doctor: ok")
			return nil
		},
	}
}

func newThemeCmd(a *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Manage color themes",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List installed themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			themes, err := themepkg.ListLocal()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			builtin := themepkg.Summary{ID: themepkg.DefaultID, Name: "Built-in palette"}
			for _, th := range append([]themepkg.Summary{builtin}, themes...) {
				mark := " "
				if th.ID == a.cfg.Theme.Active {
					mark = "*"
				}
				switch {
				case th.Err != nil:
					fmt.Fprintf(out, "%s %s invalid: %v\n", mark, th.ID, th.Err)
				case len(th.Defaulted) > 0:
					fmt.Fprintf(out, "%s %s (%s) defaults: %s\n", mark, th.ID, th.Name, strings.Join(th.Defaulted, ", "))
				default:
					fmt.Fprintf(out, "%s %s (%s)\n", mark, th.ID, th.Name)
				}
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "init <id>",
		Short: "Write a new theme file seeded with the default palette",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			tf := themepkg.ThemeFile{ID: id, Name: id, Version: 1, Colors: themepkg.DefaultPaletteHex()}
			if err := themepkg.SaveThemeFile(tf); err != nil {
				return err
			}
			dir, err := configpkg.ThemesDir()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "theme %s written to %s\n", id, dir)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "use <id>",
		Short: "Make a theme active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			cfg.Theme.Active = args[0]
			active, err := themepkg.LoadActive(cfg)
			if err != nil {
				return err
			}
			if err := a.saveConfig(cfg); err != nil {
				return err
			}
			a.cfg = cfg
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "active theme: %s\n", active.ID)
			if len(active.Defaulted) > 0 {
				fmt.Fprintf(out, "using default colors for: %s\n", strings.Join(active.Defaulted, ", "))
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Delete an installed theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := themepkg.RemoveLocalTheme(id); err != nil {
				return err
			}
			if a.cfg.Theme.Active == id {
				a.cfg.Theme.Active = themepkg.DefaultID
				if err := a.saveConfig(a.cfg); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed theme %s\n", id)
			return nil
		},
	})
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version.Value)
			return nil
		},
	}
}

func (a *cliApp) loadApplications() ([]model.Application, error) {
	st, err := a.openStore()
	if err != nil {
		return nil, err
	}
	return st.Load()
}
