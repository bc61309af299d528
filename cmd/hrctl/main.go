package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go-hr-admin/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "hrctl",
	Short: "HR admin operations CLI",
	Long: `hrctl runs schema migrations, inspects the role policy, links
Firebase accounts to employees and mints local JWTs for AUTH_PROVIDER=jwt.

Every flag can also be set as HR_<FLAG> in the environment, for example
HR_DB_HOST or HR_JWT_SECRET.`,
	SilenceUsage: true,
}

func main() {
	_ = godotenv.Load()
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("HR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	flags := rootCmd.PersistentFlags()
	flags.String("db-host", "127.0.0.1", "MySQL host")
	flags.Int("db-port", 3306, "MySQL port")
	flags.String("db-user", "root", "MySQL user")
	flags.String("db-password", "", "MySQL password")
	flags.String("db-name", "attendance_db", "MySQL database")
	flags.Bool("json", false, "output JSON")
	for _, name := range []string{"db-host", "db-port", "db-user", "db-password", "db-name", "json"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

func registerCommands() {
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(rolesCmd())
	rootCmd.AddCommand(employeesCmd())
	rootCmd.AddCommand(tokenCmd())
}

func databaseConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:            viper.GetString("db-host"),
		Port:            viper.GetInt("db-port"),
		User:            viper.GetString("db-user"),
		Password:        viper.GetString("db-password"),
		Name:            viper.GetString("db-name"),
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxLifetime: 0,
		MaxRetries:      1,
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
