// Command admin_seed creates the initial admin account and its wallet.
// Admins cannot self-register through the API, so a fresh deployment
// runs this once with ADMIN_EMAIL, ADMIN_PASSWORD and ADMIN_PHONE set.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"fluidit/internal/config"
	"fluidit/internal/models"
	"fluidit/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	adminPhone := os.Getenv("ADMIN_PHONE")
	if adminEmail == "" || adminPassword == "" || adminPhone == "" {
		log.Fatal("ADMIN_EMAIL, ADMIN_PASSWORD and ADMIN_PHONE must be set")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer repositories.Close()

	var existing models.User
	if err := repositories.DB.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		log.Println("admin user already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := models.User{
		Username:     "admin",
		Email:        adminEmail,
		Phone:        adminPhone,
		Password:     string(hashed),
		Name:         "Administrator",
		Role:         models.RoleAdmin,
		IsVerified:   true,
		TokenVersion: 1,
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}

	wallet := models.Wallet{
		UserID:   admin.ID,
		WalletID: fmt.Sprintf("FLD%d%04d", time.Now().UTC().Year(), 0),
	}
	if err := repositories.DB.Create(&wallet).Error; err != nil {
		log.Fatalf("failed to create admin wallet: %v", err)
	}
	admin.WalletID = &wallet.ID
	if err := repositories.DB.Save(&admin).Error; err != nil {
		log.Fatalf("failed to link admin wallet: %v", err)
	}

	log.Printf("admin account created with wallet %s", wallet.WalletID)
}
