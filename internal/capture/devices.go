// Copyright 2025 Agentic World, LLC (Sherin Thomas)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package capture

import "github.com/chromedp/chromedp/device"

// deviceProfiles maps a Config.Device name to one of chromedp's built-in
// device presets (viewport, pixel ratio, user agent, touch emulation).
var deviceProfiles = map[string]device.Info{
	"iphone-x":  device.IPhoneX,
	"iphone-8":  device.IPhone8,
	"iphone-6":  device.IPhone6,
	"ipad":      device.IPad,
	"ipad-pro":  device.IPadPro,
	"pixel-2":   device.Pixel2,
	"galaxy-s5": device.GalaxyS5,
	"nexus-7":   device.Nexus7,
}

// deviceByName looks up name (case-sensitive, as configured) in
// deviceProfiles.
func deviceByName(name string) (device.Info, bool) {
	d, ok := deviceProfiles[name]
	return d, ok
}
