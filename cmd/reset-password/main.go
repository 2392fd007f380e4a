package main

import (
	"flag"

	"go-stockledger/internal/config"
	"go-stockledger/internal/model"
	"go-stockledger/pkg/database"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Resets the password of a user identified by account name. Intended
// for operators locked out of an account; the server never exposes
// this path.
func main() {
	accountName := flag.String("account", "", "account name of the user")
	newPassword := flag.String("password", "", "new password to set")
	flag.Parse()

	if *accountName == "" || *newPassword == "" {
		logrus.Fatal("usage: reset-password -account <account_name> -password <new_password>")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	var user model.User
	if err := db.Where("account_name = ?", *accountName).First(&user).Error; err != nil {
		logrus.WithError(err).Fatalf("user with account %q not found", *accountName)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*newPassword), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Fatal("failed to hash password")
	}

	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		logrus.WithError(err).Fatal("failed to update password")
	}

	logrus.Infof("password for account %q has been reset", *accountName)
}
