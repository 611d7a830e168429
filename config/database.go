package config

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/go-sql-driver/mysql"
)

type DatabaseConfig struct {
	Server   string
	Database string
	User     string
	Password string
}

func NewDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Server:   getEnv("DB_SERVER", "localhost:3306"),
		Database: getEnv("DB_NAME", "dashboard"),
		User:     getEnv("DB_USER", "dashboard"),
		Password: os.Getenv("DB_PASSWORD"),
	}
}

func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&multiStatements=true&loc=America%%2FSao_Paulo",
		c.User, c.Password, c.Server, c.Database)
}

func ConnectDatabase() (*sql.DB, error) {
	config := NewDatabaseConfig()
	db, err := sql.Open("mysql", config.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	// Configurar o pool de conexões
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// Testar a conexão
	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	return db, nil
}
