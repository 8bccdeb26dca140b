/*
   ZXCore - ZX Spectrum 48K/128K emulator core
   Copyright (c) 2022, Alexander Vollschwitz

   This file is part of ZXCore.

   ZXCore is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   ZXCore is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with ZXCore. If not, see <http://www.gnu.org/licenses/>.
*/

package run

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

//
const (
	envPrefix      = "ZXCORE"
	envConfigFile  = "ZXCORE_CONFIG"
	defaultAddress = "localhost:8888"
	apiTimeout     = 30 * time.Second
)

//
const runnerHelpEpilogue = `- Settings can also be given via environment variables, prefixed with ZXCORE_
  (e.g. ZXCORE_ADDRESS), or in a config file named by ZXCORE_CONFIG.

`

/*
	Runner is the base for all commands. It embeds the cobra command and keeps
	the settings of the command, which are resolved from flags, environment,
	and an optional config file, in this order of precedence.
*/
type Runner struct {
	cobra.Command
	//
	Address  string
	LogLevel string
	//
	viper    *viper.Viper
	settings []*setting
}

//
type setting struct {
	ref      interface{}
	name     string
	required bool
}

//
func NewRunner(use, short, long, helpIntro, helpEpilogue string,
	exec func() error) *Runner {

	r := &Runner{
		Command: cobra.Command{
			Use:   use,
			Short: short,
			Long:  long,
		},
		viper: viper.New(),
	}

	r.viper.SetEnvPrefix(envPrefix)
	r.SilenceUsage = true

	if helpIntro != "" || helpEpilogue != "" {
		tmpl := r.HelpTemplate()
		r.SetHelpTemplate(fmt.Sprintf("%s%s\n%s", helpIntro, tmpl, helpEpilogue))
	}

	r.RunE = func(cmd *cobra.Command, args []string) error {
		return exec()
	}

	return r
}

//
func (r *Runner) AddBaseSettings() {
	r.AddSetting(&r.Address, "address", "a", "", defaultAddress,
		"listen address and port of daemon's API server", false)
	r.AddSetting(&r.LogLevel, "log-level", "", "LOG_LEVEL", "info",
		"log level (trace, debug, info, warn, error)", false)
}

/*
	AddSetting adds a setting backed by ref, which needs to be a pointer to a
	string, int, bool, or string slice. The setting can be given as flag, via
	environment variable ZXCORE_{NAME}, or via env if that is not empty.
*/
func (r *Runner) AddSetting(ref interface{}, name, short, env string,
	dflt interface{}, usage string, required bool) {

	flags := r.Flags()

	switch v := ref.(type) {
	case *string:
		d, _ := dflt.(string)
		flags.StringVarP(v, name, short, d, usage)
	case *int:
		d, _ := dflt.(int)
		flags.IntVarP(v, name, short, d, usage)
	case *bool:
		d, _ := dflt.(bool)
		flags.BoolVarP(v, name, short, d, usage)
	case *[]string:
		d, _ := dflt.([]string)
		flags.StringSliceVarP(v, name, short, d, usage)
	default:
		panic(fmt.Sprintf("unsupported setting type for '%s': %T", name, ref))
	}

	r.viper.BindPFlag(name, flags.Lookup(name))

	keys := []string{name, envName(name)}
	if env != "" {
		keys = append(keys, env)
	}
	r.viper.BindEnv(keys...)

	if dflt != nil {
		r.viper.SetDefault(name, dflt)
	}

	r.settings = append(r.settings, &setting{
		ref: ref, name: name, required: required})
}

//
func envName(name string) string {
	return fmt.Sprintf("%s_%s", envPrefix,
		strings.ToUpper(strings.ReplaceAll(name, "-", "_")))
}

//
func (r *Runner) ParseSettings() error {

	if file := os.Getenv(envConfigFile); file != "" {
		r.viper.SetConfigFile(file)
		if err := r.viper.ReadInConfig(); err != nil {
			return fmt.Errorf("cannot read config file %s: %v", file, err)
		}
	}

	for _, s := range r.settings {

		if s.required && !r.viper.IsSet(s.name) {
			return fmt.Errorf("required setting '%s' not set", s.name)
		}

		switch v := s.ref.(type) {
		case *string:
			*v = r.viper.GetString(s.name)
		case *int:
			*v = r.viper.GetInt(s.name)
		case *bool:
			*v = r.viper.GetBool(s.name)
		case *[]string:
			*v = r.viper.GetStringSlice(s.name)
		}
	}

	if r.LogLevel != "" {
		level, err := log.ParseLevel(r.LogLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)
	}

	log.WithField("command", r.Name()).Debug("settings parsed")
	return nil
}

// IsSet determines whether a setting has been given explicitly.
func (r *Runner) IsSet(name string) bool {

	set := false
	r.Flags().Visit(func(f *pflag.Flag) {
		if f.Name == name {
			set = true
		}
	})

	if !set {
		_, set = os.LookupEnv(envName(name))
	}
	return set
}

//
func (r *Runner) apiCall(method, path string, json bool,
	body io.Reader) (io.ReadCloser, error) {

	req, err := http.NewRequest(method,
		fmt.Sprintf("http://%s%s", r.Address, path), body)
	if err != nil {
		return nil, err
	}

	if json {
		req.Header.Set("Accept", "application/json")
	}

	log.WithFields(log.Fields{
		"method": method, "path": path}).Debug("calling API")

	client := &http.Client{Timeout: apiTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%s, and error reading reply: %v",
				resp.Status, err)
		}
		return nil, fmt.Errorf("%s: %s", resp.Status,
			strings.TrimSpace(string(msg)))
	}

	return resp.Body, nil
}

//
func GetUserConfirmation(prompt string) bool {

	fmt.Printf("%s [y/N] ", prompt)

	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
