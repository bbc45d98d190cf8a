package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/services"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaBrokers           []string
	KafkaOrderChangedTopic string
	KafkaClientID          string

	SeedCatalog bool

	AutoDeliverSchedule    string
	AutoDeliverGracePeriod time.Duration
	AutoDeliverBatchSize   int

	Rates services.RateConfiguration
}

// DSN is the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the configuration from the environment. Variables in envFile, when it
// exists, are added to the environment first without overriding what is already set.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	e := envReader{}
	defaults := services.DefaultRateConfiguration()
	cfg := Config{
		HTTPPort:   e.str("HTTP_PORT", "8080"),
		DBHost:     e.str("DB_HOST", "localhost"),
		DBPort:     e.str("DB_PORT", "5432"),
		DBUser:     e.str("DB_USER", "postgres"),
		DBPassword: e.str("DB_PASSWORD", ""),
		DBName:     e.str("DB_NAME", "printshop"),
		DBSslMode:  e.str("DB_SSLMODE", "disable"),

		KafkaBrokers:           e.list("KAFKA_BROKERS"),
		KafkaOrderChangedTopic: e.str("KAFKA_ORDER_CHANGED_TOPIC", "printshop.order-status"),
		KafkaClientID:          e.str("KAFKA_CLIENT_ID", "printshop"),

		SeedCatalog: e.boolean("SEED_CATALOG", true),

		AutoDeliverSchedule:    e.str("AUTO_DELIVER_SCHEDULE", ""),
		AutoDeliverGracePeriod: e.duration("AUTO_DELIVER_GRACE_PERIOD", 72*time.Hour),
		AutoDeliverBatchSize:   e.integer("AUTO_DELIVER_BATCH_SIZE", 100),

		Rates: services.RateConfiguration{
			TariffPerKwh:           e.float("RATE_TARIFF_PER_KWH", defaults.TariffPerKwh),
			AverageKwhPerHour:      e.float("RATE_AVERAGE_KWH_PER_HOUR", defaults.AverageKwhPerHour),
			MaintenanceRatePerHour: e.float("RATE_MAINTENANCE_PER_HOUR", defaults.MaintenanceRatePerHour),
			PackagingFee:           e.float("RATE_PACKAGING_FEE", defaults.PackagingFee),
			FreightFee:             e.float("RATE_FREIGHT_FEE", defaults.FreightFee),
			TaxRate:                e.float("RATE_TAX", defaults.TaxRate),
			MarginRate:             e.float("RATE_MARGIN", defaults.MarginRate),
			RushMultiplier:         e.float("RATE_RUSH_MULTIPLIER", defaults.RushMultiplier),
			MaxQuantity:            e.integer("RATE_MAX_QUANTITY", defaults.MaxQuantity),
			FinishFees: map[order.Finish]float64{
				order.FinishNone:     e.float("RATE_FINISH_NONE", defaults.FinishFees[order.FinishNone]),
				order.FinishSanding:  e.float("RATE_FINISH_SANDING", defaults.FinishFees[order.FinishSanding]),
				order.FinishPainting: e.float("RATE_FINISH_PAINTING", defaults.FinishFees[order.FinishPainting]),
				order.FinishUVCure:   e.float("RATE_FINISH_UV_CURE", defaults.FinishFees[order.FinishUVCure]),
			},
			ShippingRates: map[order.ShippingMethod]services.ShippingRate{},
			ProductionDays: services.ProductionDays{
				Normal: e.integer("PRODUCTION_DAYS", defaults.ProductionDays.Normal),
				Rush:   e.integer("PRODUCTION_DAYS_RUSH", defaults.ProductionDays.Rush),
			},
		},
	}
	for _, m := range order.AllShippingMethods() {
		key := strings.ToUpper(string(m))
		def := defaults.ShippingRates[m]
		cfg.Rates.ShippingRates[m] = services.ShippingRate{
			Price:       e.float("SHIPPING_"+key+"_PRICE", def.Price),
			TransitDays: e.integer("SHIPPING_"+key+"_DAYS", def.TransitDays),
		}
	}

	if err := errors.Join(e.errs...); err != nil {
		return Config{}, err
	}
	if err := cfg.Rates.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envReader collects parse errors so that every malformed variable is reported at once.
type envReader struct {
	errs []error
}

func (e *envReader) str(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (e *envReader) list(key string) []string {
	raw := e.str(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (e *envReader) float(key string, def float64) float64 {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return v
}

func (e *envReader) integer(key string, def int) int {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return v
}

func (e *envReader) boolean(key string, def bool) bool {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return v
}

func (e *envReader) duration(key string, def time.Duration) time.Duration {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return v
}
