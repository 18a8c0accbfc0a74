package main

import (
	"github.com/rdg11/recipe-app-backend/config"
	"github.com/rdg11/recipe-app-backend/routes"
	"github.com/rdg11/recipe-app-backend/utils"
)

func main() {
	db := config.InitDB()
	utils.InitMailer()
	r := routes.SetupRouter(db)
	r.Run(":8080")
}
