package browser

import (
	"fmt"
	"strings"

	"qa_automation/domain/entities"
)

var cssString = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// playwrightSelector translates a locator into a Playwright selector
func playwrightSelector(locator entities.Locator) (string, error) {
	v := locator.Value
	switch locator.Strategy {
	case entities.StrategyID:
		return "id=" + v, nil
	case entities.StrategyName:
		return fmt.Sprintf(`css=[name="%s"]`, cssString.Replace(v)), nil
	case entities.StrategyXPath:
		return "xpath=" + v, nil
	case entities.StrategyCSS, entities.StrategyTagName:
		return "css=" + v, nil
	case entities.StrategyClassName:
		return fmt.Sprintf(`css=[class~="%s"]`, cssString.Replace(v)), nil
	case entities.StrategyLinkText:
		return fmt.Sprintf(`css=a:text-is("%s")`, cssString.Replace(v)), nil
	case entities.StrategyPartialLinkText:
		return fmt.Sprintf(`css=a:has-text("%s")`, cssString.Replace(v)), nil
	}
	return "", &entities.UnsupportedStrategyError{Locator: locator}
}
