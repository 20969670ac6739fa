package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"shodan_gt_report/internal/config"
	"shodan_gt_report/internal/model"
	"shodan_gt_report/internal/runner"
)

var (
	apiKey     string
	queryText  string
	pages      int
	pageSize   int
	delaySecs  float64
	carnet     string
	nombre     string
	curso      string
	seccion    string
	configFile string
	dbPath     string
	csvPath    string
	minIPsCIDR int
	minPortsIP int
	logLevel   string
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shodan_gt_report",
		Short: "Consulta Shodan enfocada a Guatemala (country:GT) con resumen e impresión en consola",
		Long: `shodan_gt_report ejecuta una búsqueda de hosts en Shodan restringida a
Guatemala (country:GT), imprime cada resultado en consola y termina con un
resumen de IPs únicas y de IPs por puerto abierto. El filtro 'org:' está
prohibido por la consigna.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "API key de Shodan; si se omite se usa el archivo de configuración o SHODAN_API_KEY")
	rootCmd.Flags().StringVarP(&queryText, "query", "q", "", "Consulta base de Shodan (ej.: port:3389 o city:\"Jalapa\") (required)")
	rootCmd.Flags().IntVar(&pages, "pages", 1, "Cantidad de páginas a recuperar")
	rootCmd.Flags().IntVar(&pageSize, "page-size", 100, "Tamaño de página solicitado (hasta ~100)")
	rootCmd.Flags().Float64Var(&delaySecs, "delay", 1.0, "Pausa en segundos entre páginas")
	rootCmd.Flags().StringVar(&carnet, "carnet", "", "Carnet (required)")
	rootCmd.Flags().StringVar(&nombre, "nombre", "", "Nombre completo (required)")
	rootCmd.Flags().StringVar(&curso, "curso", "", "Curso (required)")
	rootCmd.Flags().StringVar(&seccion, "seccion", "", "Sección (required)")
	rootCmd.Flags().StringVar(&configFile, "config", "", "Archivo de configuración YAML opcional")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "Ruta sqlite donde guardar los resultados listados")
	rootCmd.Flags().StringVar(&csvPath, "csv", "", "Ruta CSV de exportación (requiere --db)")
	rootCmd.Flags().IntVar(&minIPsCIDR, "min-ips-per-cidr", 0, "Umbral de IPs por segmento /24 para el análisis de densidad (0 = desactivado)")
	rootCmd.Flags().IntVar(&minPortsIP, "min-ports-per-ip", 0, "Umbral de puertos por IP para marcar IPs de alto negocio (0 = desactivado)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Nivel de log (debug, info, warn, error)")

	rootCmd.MarkFlagRequired("query")
	rootCmd.MarkFlagRequired("carnet")
	rootCmd.MarkFlagRequired("nombre")
	rootCmd.MarkFlagRequired("curso")
	rootCmd.MarkFlagRequired("seccion")

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(2)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := setupLogger(logLevel)

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	// 命令行显式设置的参数优先于配置文件
	if !cmd.Flags().Changed("pages") {
		pages = cfg.Query.Pages
	}
	if !cmd.Flags().Changed("page-size") {
		pageSize = cfg.Query.PageSize
	}
	if !cmd.Flags().Changed("delay") {
		delaySecs = cfg.Query.DelaySeconds
	}
	if !cmd.Flags().Changed("db") {
		dbPath = cfg.Output.Database
	}
	if !cmd.Flags().Changed("csv") {
		csvPath = cfg.Output.CSV
	}
	if !cmd.Flags().Changed("min-ips-per-cidr") {
		minIPsCIDR = cfg.Analysis.MinIPsPerCIDR
	}
	if !cmd.Flags().Changed("min-ports-per-ip") {
		minPortsIP = cfg.Analysis.MinPortsPerIP
	}

	if csvPath != "" && dbPath == "" {
		log.Warn("se ignora --csv porque no se indicó --db")
		csvPath = ""
	}

	return runner.Run(runner.Params{
		Query:        queryText,
		APIKey:       apiKey,
		ConfigAPIKey: cfg.APIKey,
		Pages:        pages,
		PageSize:     pageSize,
		Delay:        time.Duration(delaySecs * float64(time.Second)),
		Identity: model.Identity{
			Carnet:  carnet,
			Nombre:  nombre,
			Curso:   curso,
			Seccion: seccion,
		},
		Database:      dbPath,
		CSVPath:       csvPath,
		MinIPsPerCIDR: minIPsCIDR,
		MinPortsPerIP: minPortsIP,
		Out:           os.Stdout,
		Log:           log,
	})
}

func setupLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	if lvl, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	}
	return log
}
