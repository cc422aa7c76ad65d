package main

// @title medi-map API
// @version 1.0
// @description Point weather lookups: current conditions, hourly series and elevation for a coordinate.
// @host localhost:8080
// @BasePath /
