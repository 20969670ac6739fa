package report

import (
	"fmt"
	"io"
	"strings"

	"shodan_gt_report/internal/model"
	"shodan_gt_report/internal/summary"
)

const bannerWidth = 78

// PrintHeader 打印报告头：横幅加四个学籍字段，只做展示不做校验
func PrintHeader(w io.Writer, id model.Identity) {
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "REPORTE SHODAN · Enfoque Guatemala (country:GT)")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Carnet  : %s\n", id.Carnet)
	fmt.Fprintf(w, "Nombre  : %s\n", id.Nombre)
	fmt.Fprintf(w, "Curso   : %s\n", id.Curso)
	fmt.Fprintf(w, "Sección : %s\n", id.Seccion)
	fmt.Fprintln(w, rule)
}

// PrintContext 打印生效的查询语句和分页参数
func PrintContext(w io.Writer, query string, pages, pageSize int) {
	fmt.Fprintf(w, "Consulta Shodan: %s\n", query)
	fmt.Fprintf(w, "Páginas a consultar: %d  |  Tamaño de página solicitado: %d\n\n", pages, pageSize)
}

// PrintSummary 打印最终汇总：总数、唯一IP数和端口表。
// 端口映射为空时打印"未检测到端口"提示。
func PrintSummary(w io.Writer, s *summary.RunSummary) {
	rule := strings.Repeat("-", bannerWidth)
	fmt.Fprintln(w, "\n"+rule)
	fmt.Fprintln(w, "RESUMEN")
	fmt.Fprintf(w, "Total de resultados listados: %d\n", s.TotalListed())
	fmt.Fprintf(w, "Total de direcciones IP únicas identificadas: %d\n", s.UniqueIPCount())

	ports := s.Ports()
	if len(ports) > 0 {
		fmt.Fprintln(w, "\nTotal de IPs por puerto abierto:")
		fmt.Fprintln(w, "Puerto\tIPs únicas")
		for _, p := range ports {
			fmt.Fprintf(w, "%d\t%d\n", p, s.IPCountForPort(p))
		}
	} else {
		fmt.Fprintln(w, "No se detectaron puertos en los resultados.")
	}
	fmt.Fprintln(w, rule)
}
