package config

import (
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watch calls fn after each write to the file v was read from and reports
// whether watching started. Without a backing file it does nothing.
func Watch(v *viper.Viper, fn func(v *viper.Viper, e fsnotify.Event)) bool {
	path := v.ConfigFileUsed()
	if path == "" || fn == nil {
		return false
	}
	if _, err := os.Stat(path); err != nil {
		return false
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		fn(v, e)
	})
	v.WatchConfig()
	return true
}
