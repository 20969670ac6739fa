package runner

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"shodan_gt_report/internal/analysis"
	"shodan_gt_report/internal/config"
	"shodan_gt_report/internal/database"
	"shodan_gt_report/internal/exporter"
	"shodan_gt_report/internal/model"
	"shodan_gt_report/internal/query"
	"shodan_gt_report/internal/render"
	"shodan_gt_report/internal/report"
	"shodan_gt_report/internal/summary"
	"shodan_gt_report/internal/util"
)

// Params 是一次扫描运行的全部输入
type Params struct {
	Query        string
	APIKey       string // 命令行显式传入
	ConfigAPIKey string // 配置文件里的key
	Pages        int
	PageSize     int
	Delay        time.Duration
	Identity     model.Identity

	// 可选输出与分析
	Database      string
	CSVPath       string
	MinIPsPerCIDR int
	MinPortsPerIP int

	BaseURL string // 覆盖API地址（测试用）
	Out     io.Writer
	Log     *logrus.Logger
}

// Run 执行完整流程：校验 → 鉴权 → 报告头 → 翻页拉取 → 汇总。
// 只有校验和鉴权阶段会返回错误（对应退出码2）；
// 页级服务错误只终止翻页，部分结果照常汇总。
func Run(p Params) error {
	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	log := p.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	// 校验查询策略
	if err := query.AssertNoOrgFilter(p.Query); err != nil {
		return err
	}
	finalQuery := query.EnforceCountryGT(p.Query)

	// 解析API Key
	apiKey, err := config.ResolveAPIKey(p.APIKey, p.ConfigAPIKey)
	if err != nil {
		return err
	}

	var opts []query.Option
	if p.BaseURL != "" {
		opts = append(opts, query.WithBaseURL(p.BaseURL))
	}
	client := query.NewClient(apiKey, opts...)

	// 报告头和查询上下文
	report.PrintHeader(out, p.Identity)
	report.PrintContext(out, finalQuery, p.Pages, p.PageSize)

	// 逐页拉取：打印每条记录并累计汇总状态
	sum := summary.NewRunSummary()
	var listed []model.HostMatch
	pager := query.NewPager(client, finalQuery, p.Pages, p.PageSize, p.Delay, log)
	for {
		batch, ok := pager.Next()
		if !ok {
			break
		}
		if len(batch) == 0 && sum.TotalListed() == 0 {
			fmt.Fprintln(out, "Sin resultados para la consulta.")
			break
		}
		for i, m := range batch {
			fmt.Fprintln(out, render.Line(sum.TotalListed()+i+1, m))
			sum.Record(m)
		}
		sum.AddListed(len(batch))
		if p.Database != "" {
			listed = append(listed, batch...)
		}
	}

	// 最终汇总
	report.PrintSummary(out, sum)

	if p.MinIPsPerCIDR > 0 {
		segments := analysis.HighDensityCSegments(sum.UniqueIPs(), p.MinIPsPerCIDR)
		analysis.PrintCSegments(out, segments, p.MinIPsPerCIDR)
	}
	if p.MinPortsPerIP > 0 {
		dense := analysis.DenseServiceIPs(sum, p.MinPortsPerIP)
		analysis.PrintDenseServiceIPs(out, dense, p.MinPortsPerIP)
	}

	// 持久化失败只告警，不影响退出码
	if p.Database != "" {
		persist(p, log, finalQuery, listed)
	}

	return nil
}

// persist 把列出的记录写入sqlite，需要时再导出CSV
func persist(p Params, log *logrus.Logger, finalQuery string, matches []model.HostMatch) {
	taskID := util.GenerateTaskID()
	tableName := util.GenerateTableName(taskID)

	db, err := database.InitDB(p.Database, tableName)
	if err != nil {
		log.Warnf("no se pudo abrir la base de datos %s: %v", p.Database, err)
		return
	}
	defer db.Close()

	if err := database.SaveMatches(db, tableName, finalQuery, matches); err != nil {
		log.Warnf("no se pudieron guardar los resultados: %v", err)
		return
	}
	if count, err := database.CountRows(db, tableName); err == nil {
		log.Infof("resultados guardados en %s (%s): %d filas", p.Database, tableName, count)
	}

	if p.CSVPath != "" {
		if err := exporter.ExportTableToCSV(db, tableName, p.CSVPath); err != nil {
			log.Warnf("no se pudo exportar el CSV %s: %v", p.CSVPath, err)
		} else {
			log.Infof("resultados exportados a %s", p.CSVPath)
		}
	}
}
