package exporter

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
)

// ExportTableToCSV 把本次运行的数据表导出为CSV
func ExportTableToCSV(db *sql.DB, tableName, outputPath string) error {
	query := fmt.Sprintf("SELECT ip, port, transport, city, hostnames, service, banner, query, created_at FROM %s", tableName)
	rows, err := db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	// 写入UTF-8 BOM，确保Excel等软件能正确识别编码
	file.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{
		"IP", "Port", "Transport", "City", "Hostnames", "Service", "Banner", "Query", "CreatedAt",
	})

	for rows.Next() {
		var ip, transport, city, hostnames, service, banner, q, createdAt string
		var port sql.NullInt64

		if err := rows.Scan(&ip, &port, &transport, &city, &hostnames, &service, &banner, &q, &createdAt); err != nil {
			return err
		}

		portStr := ""
		if port.Valid {
			portStr = fmt.Sprintf("%d", port.Int64)
		}

		writer.Write([]string{
			ip, portStr, transport, city, hostnames, service, banner, q, createdAt,
		})
	}

	return rows.Err()
}
