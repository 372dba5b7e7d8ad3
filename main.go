package main

import (
	"context"
	"os"

	"github.com/Zia971/immo-opportunit-s/cmd"
	"github.com/Zia971/immo-opportunit-s/internal/db"
	"github.com/Zia971/immo-opportunit-s/internal/log"
	"github.com/Zia971/immo-opportunit-s/internal/util"
)

func main() {
	config := util.GetConfig()

	log.InitLogger(config)

	// log panic error
	defer func() {
		if r := recover(); r != nil {
			logger := log.GetLogger()
			logger.Panic(r)
		}
	}()

	connection, err := db.GetConnection(config)
	if err != nil {
		// re-fetching logger to log with all fields appended during program run
		logger := log.GetLogger()
		logger.Fatalln(err)
	}

	ctx := context.Background()

	err = cmd.Run(ctx, connection, config)
	if err != nil {
		logger := log.GetLogger()
		logger.Fatalln(err)
	}

	os.Exit(0)
}
