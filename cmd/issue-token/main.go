// cmd/issue-token/main.go
//
// issue-token mints a bearer token for local development, standing in for the
// identity provider.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/permit-portal/internal/config"
	"github.com/javajoker/permit-portal/internal/models"
	"github.com/javajoker/permit-portal/internal/utils"
)

func main() {
	userID := flag.String("user", "", "actor id (required)")
	name := flag.String("name", "", "display name")
	email := flag.String("email", "", "email for submission receipts")
	admin := flag.Bool("admin", false, "issue an administrator token")
	flag.Parse()

	if *userID == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}
	if cfg.IsProduction() {
		logrus.Fatal("Refusing to issue development tokens in production")
	}

	utils.SetJWTSecret(cfg.JWT.SecretKey)
	utils.SetJWTIssuer(cfg.JWT.Issuer)

	role := models.ActorRoleApplicant
	if *admin {
		role = models.ActorRoleAdmin
	}

	token, err := utils.GenerateJWT(models.Actor{ID: *userID, Name: *name, Email: *email, Role: role}, cfg.JWT.AccessTokenTTL)
	if err != nil {
		logrus.Fatal("Failed to sign token: ", err)
	}
	fmt.Println(token)
}
