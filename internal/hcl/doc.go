// Package hcl loads catalogs and networks written in HCL into the
// format-agnostic config.Model.
//
// A file may contain any mix of these top-level blocks:
//
//	frames { names = ["world", "body"] }
//
//	static_transform "body" "laser" {
//	  translation = [0.2, 0, 0.1]
//	  rotation    = [0, 0, 0, 1] # x, y, z, w
//	}
//
//	dynamic_transform "odometry" "world" {
//	  producer = "wheel_odometry"
//	}
//
//	component "mapper" {
//	  input "scans" { frame = "sensor" }
//	  output "pose" {
//	    from = "body"
//	    to   = "map"
//	  }
//	  needs "sensor" "map" {}
//	}
//
//	task "mapping" {
//	  component = "mapper"
//	  frames    = { map = "world" }
//	  children  = ["laser"]
//	  producer "odometry" "world" { producer = "wheel_odometry" }
//	  device "hokuyo" {
//	    port  = "scans"
//	    frame = "laser_front"
//	  }
//	}
//
//	connect {
//	  from = "laser.scans"
//	  to   = "mapping.scans"
//	}
package hcl
