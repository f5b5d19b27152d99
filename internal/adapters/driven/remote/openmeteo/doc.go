// Package openmeteo fetches daily forecasts from the Open-Meteo API
// (https://open-meteo.com). It implements the ForecastSource port:
// location keys are "lat,lon" pairs, WMO weather codes map onto icon
// codes and display text, and temperatures honor the configured unit.
//
// Requests pass through a token-bucket rate limiter and a circuit
// breaker, so a failing upstream degrades to fast errors instead of
// being hammered with retries.
package openmeteo
