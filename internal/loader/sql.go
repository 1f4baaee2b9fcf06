package loader

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector returns the gorm dialector for a driver name.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch strings.ToLower(driver) {
	case "mysql", "mariadb":
		return mysql.Open(dsn), nil
	case "postgres", "postgresql", "pg":
		return postgres.Open(dsn), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "sql driver %q", driver)
	}
}

// LoadSQL runs query and returns its result set as a frame.
func LoadSQL(ctx context.Context, driver, dsn, query string, opts Options) (dataframe.DataFrame, error) {
	dialector, err := Dialector(driver, dsn)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "failed to connect to %s", driver)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer sqlDB.Close()

	rows, err := db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrap(err, "query failed")
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	return fromRecords(records, opts)
}

// scanRecords drains rows into a header row plus string rows.
func scanRecords(rows *sql.Rows) ([][]string, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	records := [][]string{cols}

	values := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrap(err, "failed to scan row")
		}
		record := make([]string, len(cols))
		for i, v := range values {
			if v.Valid {
				record[i] = v.String
			} else {
				record[i] = nullMarker
			}
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
