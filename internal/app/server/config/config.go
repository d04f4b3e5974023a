package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress = ":8080"
	defaultMigrations = "db/migrations"
)

type Config struct {
	Env    string
	DB     db
	Server server
	Vault  vault
	Logger logger
}

type db struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

// vault holds the key material the field cipher derives from. Secret is
// mandatory; Salt has a default so single-node setups work out of the box,
// but changing it after data exists makes every stored field unreadable.
type vault struct {
	Secret string `env:"VAULT_SECRET"`
	Salt   string `env:"VAULT_KDF_SALT"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("no .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()

	config := Config{
		Env: viper.GetString("app_env"),
		DB: db{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
		},
		Server: server{RunAddress: viper.GetString("run_address")},
		Vault: vault{
			Secret: viper.GetString("vault_secret"),
			Salt:   viper.GetString("vault_kdf_salt"),
		},
		Logger: logger{LogLevel: viper.GetString("log_level")},
	}

	if config.Server.RunAddress == "" {
		config.Server.RunAddress = defaultRunAddress
	}
	if config.DB.Migrations == "" {
		config.DB.Migrations = defaultMigrations
	}
	if config.Vault.Secret == "" {
		log.Fatalln("VAULT_SECRET must be set")
	}
	if config.Vault.Salt == "" {
		config.Vault.Salt = "vaultis-kdf-salt-v1"
	}

	return &config
}
