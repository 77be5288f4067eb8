package migration

import (
	"Pantry-Ledger/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.FoodItem{}); err != nil {
		log.Fatalf("Error migrating food item database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Reservation{}); err != nil {
		log.Fatalf("Error migrating reservation database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.MealPlan{}); err != nil {
		log.Fatalf("Error migrating meal plan database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.MealSettlement{}); err != nil {
		log.Fatalf("Error migrating meal settlement database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ConsumptionRecord{}); err != nil {
		log.Fatalf("Error migrating consumption record database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.DonationRecord{}); err != nil {
		log.Fatalf("Error migrating donation record database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
