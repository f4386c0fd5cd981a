/*
Command gnomon estimates latitude and longitude from shadow stick
measurements.

Contents

  Program overview
  Command line usage
  Configuring file locations
  File formats
  Algorithm outline
  Related commands


Program overview

A vertical stick (a gnomon) casts a shadow whose length gives the elevation
of the sun and whose compass bearing gives the azimuth of the sun.  With the
time and date of the measurement, these determine where on Earth the
measurement was made.  Input is a file of measurement records, output is a
latitude and longitude estimate for each record.

Sample run:

Put these records in a file, say stick.txt,

  # id    date       UTC   stick shadow azimuth magdecl site
  s1      2023-06-21 12:00 1.00  1.00     0.0   0.0
  s2      2023-04-30 09:15 1.20  0.80   300.0  -3.0

then type "gnomon stick.txt" and get,

  gnomon version 0.3 Go source.
  ID        Latitude  Longitude
  s1        -30.4423   -37.1144
  s2        -23.9821    -4.4143

The estimate is only as good as the measurement, and the method itself is
crude.  See Algorithm outline.


Command line usage

Invoking the program without command line arguments (or with invalid
arguments) shows this usage prompt.

  Usage: gnomon [options] <measfile>    estimate positions of measurements in file
         gnomon [options] -             estimate positions of measurements from stdin
         gnomon -h                      display help and quick reference
         gnomon -v                      display version and copyright

  Options:
         -c <config-file>
         -s <site-file>
         -p <path>


Configuring file locations

Gnomon reads two optional files, a configuration file and a site file.
By default they are named gnomon.config and gnomon.sites and are looked for
in a directory gnomon under the user configuration directory.  -p specifies
a different directory.  -c and -s specify the files directly, and then the
files must exist.


File formats

Measurement records are single lines of whitespace separated fields,

  <id> <YYYY-MM-DD> <HH:MM> <stick> <shadow> <azimuth> [<magdecl>|-] [<site>]

Stick height and shadow length are in meters.  Azimuth is the compass
bearing in degrees from the foot of the stick to the tip of the shadow.
Magdecl is the magnetic declination in degrees, east positive, the amount
added to a compass bearing to give a true bearing.  When it is - or missing,
the declination keyword of the config file applies.  Site is an optional
code from the site file.  Date and time are UTC; seconds are not used.
Blank lines and lines starting with # are ignored, as are lines that do not
parse, with a message on stderr.

The configuration file is a text file with one keyword per line.  Empty
lines and lines beginning with # are ignored.

   headings / noheadings      version and column headings, default headings
   solar / nosolar            sun elevation, declination, azimuth, day of year
   residual / noresidual      azimuth residual of the final iteration
   wrap / nowrap              show longitude in (-180, 180]
   decimal / sexagesimal      degrees, or degrees minutes seconds
   copy / nocopy              a "lat, lon" column for pasting elsewhere
   precise / noprecise        approximate minus apparent solar declination
   declination = <degrees>    magnetic declination for records without one

The site file has lines of code, latitude, and longitude in degrees, east
positive, followed by an optional name.  When a site file is present an
Err km column shows the distance from each estimate to the site named in the
record.


Algorithm outline

1.  Solar declination is approximated from the day of year as
23.45° sin(360°/365 (284 + day)).

2.  Sun elevation is atan(stick/shadow).  Sun azimuth is the shadow bearing,
corrected for magnetic declination, plus 180°.

3.  Starting from longitude 0, five iterations each compute an hour angle
from UTC and the current longitude, solve latitude from the elevation,
compute the sun azimuth that latitude implies, and move longitude by one
quarter of the difference from the observed azimuth.  Sine and cosine
values are clamped to [-1, 1] before inverse trig functions.

There is no convergence test.  Results are whatever five iterations give,
the residual column shows the last azimuth difference.  Longitude is not
wrapped unless the wrap keyword is given.  Near the equinoxes solar
declination is close to zero and latitude is undefined; such records are
reported as errors.


Related commands

gnsim generates measurement records for a known location.
gnserve serves estimates over HTTP.

-------------
Public domain.
*/
package main
