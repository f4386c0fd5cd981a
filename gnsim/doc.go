/*
Command gnsim generates shadow stick measurement records.

Records are what an observer at a known latitude and longitude would measure
with a stick of a given height at regular times through a day.  Output is in
the measurement record format read by gnomon, and can be piped to it:

  gnsim -lat 48.8566 -lon 2.3522 -date 2023-06-21 -site PAR | gnomon -

  Usage: gnsim [options]
    -approx=false: use gnomon's own solar approximations
    -date="": UTC date, YYYY-MM-DD (default today)
    -decl=0: magnetic declination of the compass, degrees
    -every=60: minutes between measurements
    -from="06:00": first UTC time
    -lat=0: latitude, degrees
    -lon=0: longitude, degrees east
    -noise=0: standard deviation of measurement error, meters and degrees
    -seed=0: random seed for noise, 0 for a random seed
    -site="": site code to put in records
    -stick=1: stick height, meters
    -to="18:00": last UTC time
    -v=false: display version and copyright

By default the sun position is computed with apparent solar coordinates and
sidereal time.  With -approx the simple declination formula and an hour
angle of 15° per hour from 12h UTC are used, the same model gnomon inverts.

Times when the sun is below the horizon are skipped.

Noise, if specified, is Gaussian with the given standard deviation, added
to shadow length in meters and shadow azimuth in degrees.  With a nonzero
-seed the same noise is generated on each run.
*/
package main
