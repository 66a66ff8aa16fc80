package main

import (
	"fmt"
	"log"

	"cloudcost/internal/app/ds"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := "host=localhost user=postgres password=password dbname=cloudcost_db port=5432 sslmode=disable TimeZone=Europe/Moscow"
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	var services []ds.CloudService
	err = db.Find(&services).Error
	if err != nil {
		log.Fatal("Failed to get services:", err)
	}

	fmt.Println("Services in database:")
	for _, service := range services {
		imageURL := "NULL"
		if service.ImageURL != nil {
			imageURL = *service.ImageURL
		}
		fmt.Printf("ID: %d, Name: %s, Category: %s, UnitPrice: %.4f, ImageURL: %s\n",
			service.ID, service.Name, service.Category, service.UnitPrice, imageURL)
	}
}
