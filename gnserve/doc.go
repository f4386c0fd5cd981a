/*
Command gnserve serves gnomon position estimates over HTTP.

Configuration is by environment variables, which may also be given in a
.env file in the working directory:

  GNSERVE_ADDR   listen address, default :8080
  GNSERVE_DEBUG  if set, human readable debug logging

Routes:

  POST /v1/estimate
  GET  /healthz
  GET  /metrics

An estimate request is a JSON object,

  {
    "stick_height": 1,
    "shadow_length": 1,
    "shadow_azimuth": 0,
    "date": "2023-06-21",
    "time": "12:00",
    "magnetic_declination": 0,
    "wrap": false
  }

with lengths in meters, angles in degrees, and date and time UTC.  The
response has the estimated latitude and longitude and the intermediate solar
quantities, in degrees rounded to four places:

  {
    "latitude": -30.4423,
    "longitude": -37.1144,
    "elevation": 45,
    "declination": 23.4498,
    "sun_azimuth": 180,
    "day_of_year": 172,
    "residual": -180,
    "position": "-30.4423, -37.1144"
  }

Longitude is not normalized unless "wrap" is true.  Invalid measurements get
status 400, measurements with no defined position status 422.  Both have a
body {"error": <message>, "kind": "invalid_input" | "undefined"}.
*/
package main
