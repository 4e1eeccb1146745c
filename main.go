/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/vancoder1/CampusJobBoardSystem/cmd"

func main() {
	cmd.Execute()
}
