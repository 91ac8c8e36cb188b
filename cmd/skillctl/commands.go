package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillmatrix/skill-matrix/internal/exchange"
	"github.com/skillmatrix/skill-matrix/internal/gap"
	"github.com/skillmatrix/skill-matrix/internal/hierarchy"
	"github.com/skillmatrix/skill-matrix/internal/models"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Применить схему и показать применённые миграции",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := application.Store.AppliedMigrations(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Заполнить пустую базу примерными данными",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := application.Services.Seed.Seed(cmd.Context())
		if err != nil {
			return err
		}
		if result.Skipped {
			fmt.Fprintln(cmd.OutOrStdout(), "данные уже есть, ничего не сделано")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "группы: %d, пользователи: %d, категории: %d, навыки: %d, оценки: %d\n",
			result.Groups, result.Users, result.Categories, result.Skills, result.Evaluations)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Загрузить оценки из CSV или XLSX",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		report, err := application.Services.Importer.Import(cmd.Context(), f)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "строк: %d, загружено: %d, ошибок: %d\n", report.Rows, report.Imported, len(report.Errors))
		for _, e := range report.Errors {
			fmt.Fprintf(out, "  строка %d: %s\n", e.Row, e.Message)
		}
		return nil
	},
}

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Выгрузить все оценки; формат по --format или расширению файла",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := exportFormat
		if value == "" {
			value = strings.TrimPrefix(filepath.Ext(args[0]), ".")
		}
		format, err := exchange.ParseFormat(value)
		if err != nil {
			return err
		}

		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		n, err := application.Services.Exporter.Export(cmd.Context(), f, format)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "выгружено оценок: %d\n", n)
		return nil
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup [FILE]",
	Short: "Сделать резервную копию базы sqlite; без FILE копия ложится в BACKUP_DIR",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var dest string
		if len(args) == 1 {
			dest = args[0]
		}
		path, err := application.Services.System.Backup(cmd.Context(), dest)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Показать драйвер, версию схемы и число записей",
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := application.Services.System.Info(cmd.Context())
		if err != nil {
			return err
		}
		c := info.Counts
		fmt.Fprintf(cmd.OutOrStdout(), "драйвер: %s\nсхема: %s\nгруппы: %d, пользователи: %d, категории: %d, навыки: %d, оценки: %d, цели: %d\n",
			info.Driver, info.Schema, c.Groups, c.Users, c.Categories, c.Skills, c.Evaluations, c.Targets)
		return nil
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Показать дерево категорий с навыками",
	RunE: func(cmd *cobra.Command, args []string) error {
		roots, err := application.Services.Categories.Tree(cmd.Context())
		if err != nil {
			return err
		}
		printTree(cmd.OutOrStdout(), roots)
		return nil
	},
}

func printTree(w io.Writer, roots []*models.CategoryNode) {
	hierarchy.Walk(roots, func(n *models.CategoryNode, depth int) bool {
		indent := strings.Repeat("  ", depth)
		fmt.Fprintf(w, "%s%s [%d]\n", indent, n.Name, n.ID)
		for _, s := range n.Skills {
			fmt.Fprintf(w, "%s  - %s\n", indent, s.Name)
		}
		return true
	})
}

var (
	radarUser   int64
	radarGroup  int64
	radarParent int64
)

var radarCmd = &cobra.Command{
	Use:   "radar",
	Short: "Оси радара пользователя или группы в JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		if (radarUser == 0) == (radarGroup == 0) {
			return fmt.Errorf("нужен ровно один из флагов --user или --group")
		}
		var parentID *int64
		if radarParent > 0 {
			parentID = &radarParent
		}

		var (
			axes []models.RadarAxis
			err  error
		)
		if radarUser > 0 {
			axes, err = application.Services.Evaluations.UserRadar(cmd.Context(), radarUser, parentID)
		} else {
			axes, err = application.Services.Evaluations.GroupRadar(cmd.Context(), radarGroup, parentID)
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"axes":      axes,
			"total_gap": gap.TotalGap(axes),
		})
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "csv или xlsx")

	radarCmd.Flags().Int64Var(&radarUser, "user", 0, "id пользователя")
	radarCmd.Flags().Int64Var(&radarGroup, "group", 0, "id группы")
	radarCmd.Flags().Int64Var(&radarParent, "parent", 0, "id родительской категории (по умолчанию корни)")

	rootCmd.AddCommand(migrateCmd, seedCmd, importCmd, exportCmd, backupCmd, infoCmd, treeCmd, radarCmd)
}
