package main

import (
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"atrium/internal/config"
	"atrium/internal/database"
	"atrium/internal/domain"
)

var documentTypes = []string{
	"ASO",
	"Atestado médico",
	"Certificado NR-10",
	"Certificado NR-35",
	"CNH",
	"Contrato de trabalho",
	"Ficha de EPI",
}

// Folder skeleton created for every seeded employee, with the owner role of each node.
var folderSkeleton = []struct {
	name  string
	owner domain.Role
	sub   []string
}{
	{"Admissão", domain.RoleHR, []string{"Contrato", "Documentos pessoais"}},
	{"Segurança do Trabalho", domain.RoleSafety, []string{"EPI", "Treinamentos"}},
	{"Diretoria", domain.RoleAdmin, nil},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}
	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("migrate failed: ", err)
	}

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "atrium123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hash password: ", err)
	}

	log.Println("Creating users...")
	now := time.Now()
	users := []domain.User{
		{Email: "admin@atrium.local", Name: "Administrador", Role: domain.RoleAdmin},
		{Email: "rh@atrium.local", Name: "Recursos Humanos", Role: domain.RoleHR},
		{Email: "sst@atrium.local", Name: "Segurança do Trabalho", Role: domain.RoleSafety},
	}
	for i := range users {
		users[i].PasswordHash = string(hash)
		users[i].Active = true
		users[i].CreatedAt = now
		users[i].UpdatedAt = now
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&users).Error; err != nil {
		log.Fatal("seed users: ", err)
	}

	log.Println("Creating document types...")
	for _, name := range documentTypes {
		var count int64
		db.Model(&domain.DocumentType{}).Where("LOWER(name) = ? AND active = ?", strings.ToLower(name), true).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&domain.DocumentType{Name: name, Active: true, CreatedAt: now, UpdatedAt: now}).Error; err != nil {
			log.Fatal("seed document type: ", err)
		}
	}

	log.Println("Creating sample employees...")
	employees := []domain.Employee{
		{FullName: "Maria Aparecida Souza", Registration: "000101", JobTitle: "Analista de RH", Email: "maria.souza@example.com"},
		{FullName: "João Pedro Lima", Registration: "000102", JobTitle: "Eletricista", Email: "joao.lima@example.com"},
	}
	for i := range employees {
		e := &employees[i]
		e.Active = true
		e.CreatedAt = now
		e.UpdatedAt = now
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(e)
		if res.Error != nil {
			log.Fatal("seed employee: ", res.Error)
		}
		if res.RowsAffected == 0 {
			continue
		}
		if err := seedFolders(db, e.ID, now); err != nil {
			log.Fatal("seed folders: ", err)
		}
	}

	log.Printf("Seed completed. Users share the password from SEED_PASSWORD (default %q).", "atrium123")
}

func seedFolders(db *gorm.DB, employeeID int64, now time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, node := range folderSkeleton {
			parent := domain.Folder{
				EmployeeID: employeeID,
				Name:       node.name,
				OwnerRole:  node.owner,
				Active:     true,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := tx.Create(&parent).Error; err != nil {
				return err
			}
			for _, name := range node.sub {
				child := domain.Folder{
					EmployeeID: employeeID,
					ParentID:   &parent.ID,
					Name:       name,
					OwnerRole:  node.owner,
					Active:     true,
					CreatedAt:  now,
					UpdatedAt:  now,
				}
				if err := tx.Create(&child).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
