// Package config loads the dashboard's runtime configuration.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. A YAML file named by SALES_CONFIG_FILE, or config.yaml if present
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern SALES_<SECTION>_<FIELD>:
//
//	SALES_SERVER_PORT=8080
//	SALES_STORE_GOOGLE_SHEET_ID=1AbC...
//	SALES_STORE_JSON_CREDENTIALS={"type":"service_account",...}
//	SALES_DATASET_SOURCE=file
//	SALES_DATASET_FILE_PATH=data/walmart.xlsx
//	SALES_PREDICTOR_MODEL_PATH=models/weekly_sales.yaml
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Tests build a configuration with Default() and adjust the fields they need.
package config
