package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"shodan_gt_report/internal/model"
)

// banner入库时也只保留首行前180字符，和控制台展示一致
const bannerColumnLen = 180

// InitDB 初始化 SQLite 数据库和本次运行的数据表
func InitDB(dbPath, tableName string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		os.MkdirAll(dir, os.ModePerm)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA encoding = 'UTF-8'"); err != nil {
		return nil, err
	}

	createStmt := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    ip TEXT,
    port INTEGER,
    transport TEXT,
    city TEXT,
    hostnames TEXT,
    service TEXT,
    banner TEXT,
    query TEXT,
    created_at TEXT,
    UNIQUE(ip, port)
);
`, tableName)

	if _, err := db.Exec(createStmt); err != nil {
		return nil, err
	}

	return db, nil
}

// SaveMatches 把列出的记录写入数据表，(ip, port) 冲突时覆盖旧行
func SaveMatches(db *sql.DB, tableName, query string, matches []model.HostMatch) error {
	insertSQL := fmt.Sprintf(`
INSERT INTO %s (ip, port, transport, city, hostnames, service, banner, query, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(ip, port) DO UPDATE SET
    transport=excluded.transport,
    city=excluded.city,
    hostnames=excluded.hostnames,
    service=excluded.service,
    banner=excluded.banner,
    query=excluded.query,
    created_at=excluded.created_at;
`, tableName)

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now().Format(time.RFC3339)
	for _, m := range matches {
		ip, _ := m.IPAddress()
		var port any
		if p, ok := m.PortNumber(); ok {
			port = p
		}
		transport, _ := m.TransportProtocol()
		city, _ := m.CityName()
		service, _ := m.ServiceName()

		if _, err := stmt.Exec(
			ip,
			port,
			transport,
			city,
			strings.Join(m.Hostnames, ";"),
			service,
			m.FirstBannerLine(bannerColumnLen),
			query,
			now,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert failed for %s: %w", ip, err)
		}
	}

	return tx.Commit()
}

// CountRows 返回数据表里的行数
func CountRows(db *sql.DB, tableName string) (int, error) {
	var count int
	err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", tableName)).Scan(&count)
	return count, err
}
