package config

import (
	"bytes"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"orderenhancer/internal/sanitize"
	"orderenhancer/internal/timeutil"
	"orderenhancer/resolve"
	"orderenhancer/schema"
	"strings"
)

const (
	KeyExportEnabled           = "export.enabled"
	KeyExportConsolidateOrders = "export.consolidate_orders"
	KeyExportSchema            = "export.schema"
	KeyExportSchemasFile       = "export.schemas_file"
	KeyExportDateFormat        = "export.date_format"
	KeyExportFallbackCharset   = "export.fallback_charset"
	KeyExportFormat            = "export.format"
	KeyCustomerNamePriority    = "customer.name_priority"
	KeyLoggingLevel            = "logging.level"
	KeyLoggingFormat           = "logging.format"
	KeyStorageDB               = "storage.db"
)

type Config struct {
	Export   ExportConfig   `mapstructure:"export"`
	Customer CustomerConfig `mapstructure:"customer"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

type ExportConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	ConsolidateOrders bool   `mapstructure:"consolidate_orders"`
	Schema            string `mapstructure:"schema" validate:"required"`
	SchemasFile       string `mapstructure:"schemas_file"`
	// DateFormat uses PHP date() notation, one of timeutil.DisplayFormats.
	DateFormat      string `mapstructure:"date_format" validate:"required"`
	FallbackCharset string `mapstructure:"fallback_charset"`
	Format          string `mapstructure:"format" validate:"required,oneof=csv xlsx excel"`
}

type CustomerConfig struct {
	NamePriority string `mapstructure:"name_priority" validate:"required,oneof=billing_first shipping_first customer_first billing_only shipping_only"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

type StorageConfig struct {
	DB string `mapstructure:"db" validate:"required"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# orderenhancer configuration
export:
  enabled: true
  consolidate_orders: true
  # excel_export | csv_processor | admin_grid, or a name from schemas_file
  schema: "excel_export"
  schemas_file: ""
  # Y-m-d H:i:s | d/m/Y H:i | m/d/Y H:i | d-m-Y H:i | M j, Y g:i A
  date_format: "Y-m-d H:i:s"
  # charset used to repair values that are not valid UTF-8
  fallback_charset: "windows-1252"
  format: "csv"

customer:
  # billing_first | shipping_first | customer_first | billing_only | shipping_only
  name_priority: "billing_first"

logging:
  level: "warn"
  format: "text"

storage:
  db: "./orderenhancer.db"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateDateFormat(cfg.Export.DateFormat); err != nil {
		return nil, err
	}
	if _, err := sanitize.New(cfg.Export.FallbackCharset); err != nil {
		return nil, fmt.Errorf("validation failed: export.fallback_charset: %w", err)
	}
	if _, err := cfg.Schema(); err != nil {
		return nil, fmt.Errorf("validation failed: export.schema: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyExportEnabled, true)
	v.SetDefault(KeyExportConsolidateOrders, true)
	v.SetDefault(KeyExportSchema, schema.ExcelExportName)
	v.SetDefault(KeyExportSchemasFile, "")
	v.SetDefault(KeyExportDateFormat, timeutil.DefaultDisplayFormat)
	v.SetDefault(KeyExportFallbackCharset, "windows-1252")
	v.SetDefault(KeyExportFormat, "csv")
	v.SetDefault(KeyCustomerNamePriority, string(resolve.BillingFirst))
	v.SetDefault(KeyLoggingLevel, "warn")
	v.SetDefault(KeyLoggingFormat, "text")
	v.SetDefault(KeyStorageDB, "./orderenhancer.db")
}

func validateDateFormat(format string) error {
	for _, supported := range timeutil.DisplayFormats {
		if format == supported {
			return nil
		}
	}
	return fmt.Errorf(
		"validation failed: export.date_format %q is not supported (valid: %s)",
		format,
		strings.Join(timeutil.DisplayFormats, " | "),
	)
}

// Schemas returns the built-in schemas plus those defined in schemas_file.
func (c Config) Schemas() (*schema.Registry, error) {
	if strings.TrimSpace(c.Export.SchemasFile) == "" {
		return schema.NewRegistry(nil), nil
	}
	custom, err := schema.LoadFile(c.Export.SchemasFile)
	if err != nil {
		return nil, err
	}
	return schema.NewRegistry(custom), nil
}

// Schema resolves the configured export schema.
func (c Config) Schema() (schema.Schema, error) {
	registry, err := c.Schemas()
	if err != nil {
		return schema.Schema{}, err
	}
	return registry.Lookup(c.Export.Schema)
}

// DateLayout returns the Go layout for the configured display format.
func (c Config) DateLayout() (string, error) {
	return timeutil.Layout(c.Export.DateFormat)
}

func (c Config) Sanitizer() (*sanitize.Sanitizer, error) {
	return sanitize.New(c.Export.FallbackCharset)
}

func (c Config) NamePriority() (resolve.NamePriority, error) {
	return resolve.ParseNamePriority(c.Customer.NamePriority)
}
