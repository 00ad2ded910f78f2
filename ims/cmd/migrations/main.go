package main

import (
	"flag"
	"log"

	"ims/ims/cmd"
	"ims/ims/schema/migrations"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dbUri := flag.String("db", "", "Database URI")
	flag.Parse()

	db, err := gorm.Open(postgres.Open(cmd.UriToDsn(*dbUri)), &gorm.Config{})
	if err != nil {
		log.Fatalf("error opening database connection: %v", err)
	}

	migrations.RunMigrations(db)
}
