package env

import "os"

// TrySetFromEnv overwrites val only when the variable is actually set.
func TrySetFromEnv(envName string, val *string) {
	if envVal, found := os.LookupEnv(envName); found {
		*val = envVal
	}
}
