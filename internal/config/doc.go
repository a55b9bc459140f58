// Package config provides configuration parsing for memolab.
//
// The configuration is stored in memolab.json or memolab.yaml. This package
// handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "debug": false,
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000
//	  },
//	  "log": {
//	    "level": "info"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "memolab",
//	    "path": "/metrics"
//	  },
//	  "tracing": {
//	    "enabled": false
//	  },
//	  "report": {
//	    "bucket": "memolab-reports",
//	    "prefix": "reports/",
//	    "region": "us-east-1",
//	    "format": "yaml"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
