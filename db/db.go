package db

import (
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var Instance *gorm.DB

// Init opens MySQL when mysqlDSN is set, SQLite (sqliteFile) otherwise
func Init(mysqlDSN, sqliteFile string) {
	var dialector gorm.Dialector
	if mysqlDSN != "" {
		log.Println("Using MySQL")
		dialector = mysql.Open(mysqlDSN)
	} else {
		log.Printf("Using SQLite: %s", sqliteFile)
		dialector = sqlite.Open(sqliteFile)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil || db == nil {
		panic(err)
	}
	Instance = db
}
