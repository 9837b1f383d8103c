package db

import (
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	constant "wardmap.xyz/ward-track-service/pkg/common"
	"wardmap.xyz/ward-track-service/pkg/models"
)

type DB struct {
	Conn *gorm.DB
}

var (
	instance *DB
	once     sync.Once
)

func GetInstance(dialector gorm.Dialector) *DB {
	var logger = constant.GetLogger()
	once.Do(func() {
		conn, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}

		logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

		instance = &DB{Conn: conn}

		err = instance.Conn.AutoMigrate(
			&models.LocationSample{},
			&models.Fence{},
			&models.Alert{},
			&models.Application{},
			&models.Notification{},
			&models.Device{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}

		logger.Info("Database migration completed")

		if err := instance.Conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			log.Fatal("Failed to enable sqlite foreign key support", err)
		}

		if err := instance.Conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
			log.Fatal("Failed to set sqlite journal mode", err)
		}

		// store-level guard for alert dedup: at most one UNRESOLVED alert
		// may exist per (device, fence), no matter how many evaluators race
		if err := instance.Conn.Exec(
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_alerts_unresolved_device_fence
			 ON alerts(device_id, fence_id) WHERE status = 'UNRESOLVED'`,
		).Error; err != nil {
			log.Fatal("Failed to create alert dedup index", err)
		}
	})
	return instance
}

func UseSqliteDialector() gorm.Dialector {
	var dbPath string
	var found bool
	if dbPath, found = os.LookupEnv(constant.EnvKeyGuardDbPath); !found {
		dbPath = "wardtrack.db"
	}
	return sqlite.Open(dbPath)
}

func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open("file::memory:?cache=shared")
}
