package main

import (
	"log"
	"os"

	"github.com/playlearnspark/backend/core"
	"github.com/playlearnspark/backend/core/content"
	"github.com/playlearnspark/backend/storage/database"
	sqlxrepos "github.com/playlearnspark/backend/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up DB
	errAndDie(database.CreateIfNotExist(core.Conf))
	db, err := database.Open(core.Conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	// start CLI
	cli := commandLine{
		db:         db.DB,
		usrRepo:    sqlxrepos.NewUserRepository(db),
		contentSvc: content.NewService(sqlxrepos.NewLessonRepository(db)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
