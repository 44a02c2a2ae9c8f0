package main

import (
	"flag"
	"fmt"
	"os"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/shiena/ansicolor"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	hf bool
	cf string
)

func init() {
	flag.BoolVar(&hf, "h", false, "this help")
	flag.StringVar(&cf, "c", "conf.toml", "set config `file`")
	flag.Usage = usage

	log.SetFormatter(&nested.Formatter{
		HideKeys:        true,
		ShowFullLevel:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	log.SetOutput(ansicolor.NewAnsiColorWriter(os.Stdout))
	log.SetLevel(log.DebugLevel)
}

func usage() {
	fmt.Fprintf(os.Stderr, `tiler version: tiler/v0.1.0
Usage: tiler [-h] [-c filename]
`)
	flag.PrintDefaults()
}

// initConf loads a toml config file into viper, filling in the same
// defaults the teacher's pipeline shipped with.
func initConf(cfgFile string) {
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		log.Warnf("config file(%s) not exist", cfgFile)
	}
	viper.SetConfigType("toml")
	viper.SetConfigFile(cfgFile)
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		log.Warnf("read config file(%s) error, details: %s", viper.ConfigFileUsed(), err)
	}

	viper.SetDefault("app.version", "v0.1.0")
	viper.SetDefault("app.title", "Tiled Geometry Slicer")
	viper.SetDefault("output.format", "mbtiles")
	viper.SetDefault("output.directory", "output")
	viper.SetDefault("slicer.buffer", 1.0/16.0)
	viper.SetDefault("task.workers", 4)
}

type cfgLayer struct {
	Name    string
	Min     int
	Max     int
	Geojson string
	Area    bool
}

func main() {
	flag.Parse()
	if hf {
		flag.Usage()
		return
	}
	if cf == "" {
		cf = "conf.toml"
	}
	initConf(cf)

	var cfgLayers []cfgLayer
	if err := viper.UnmarshalKey("lrs", &cfgLayers); err != nil {
		log.Fatal("lrs config error: ", err)
	}
	if len(cfgLayers) == 0 {
		log.Fatal("no layers configured")
	}

	task, err := NewTask(cfgLayers)
	if err != nil {
		log.Fatal(err)
	}

	if err := task.Run(); err != nil {
		log.Fatal(err)
	}
}
